package usecase

import (
	"context"

	"github.com/ftcstats/ftcstats/internal/domain/event"
	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
	"github.com/ftcstats/ftcstats/internal/domain/scores2021"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
)

// SyncWriter is the write surface available inside one sync transaction.
// Implementations chunk large row sets themselves.
type SyncWriter interface {
	UpsertEvents(ctx context.Context, rows []event.Event) error
	UpsertMatches(ctx context.Context, rows []match.Match) error
	UpsertParticipations(ctx context.Context, rows []participation.Participation) error
	UpsertScores2021(ctx context.Context, rows []scores2021.MatchScores) error
	PutCursor(ctx context.Context, cursor syncmeta.Cursor) error
}

// SyncStore runs a whole sync cycle's writes in a single transaction. If fn
// returns an error nothing is committed, including the cursor.
type SyncStore interface {
	InTx(ctx context.Context, fn func(w SyncWriter) error) error
}

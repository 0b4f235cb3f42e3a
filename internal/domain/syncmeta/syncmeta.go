// Package syncmeta tracks the per-season, per-dataset high-water marks that
// drive incremental sync. The cursor is captured before a fetch cycle starts
// and persisted in the same transaction as the cycle's rows, so a crash never
// advances it past data that was actually written.
package syncmeta

import (
	"context"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// Kind names a synced dataset.
type Kind string

const (
	KindEvents  Kind = "events"
	KindMatches Kind = "matches"
)

// Cursor is the last successful fetch time for one season and dataset.
type Cursor struct {
	Season    season.Season
	Kind      Kind
	FetchedAt time.Time
}

// Repository reads sync cursors. Writes happen through the sync store so the
// cursor lands in the same transaction as the cycle's data.
type Repository interface {
	// LastFetch returns nil when the season and kind have never been synced,
	// which callers treat as "fetch everything".
	LastFetch(ctx context.Context, s season.Season, kind Kind) (*time.Time, error)
}

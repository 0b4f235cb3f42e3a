package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ftcstats/ftcstats/internal/domain/event"
	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
	"github.com/ftcstats/ftcstats/internal/domain/scores2021"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
	qb "github.com/ftcstats/ftcstats/internal/platform/querybuilder"
	"github.com/ftcstats/ftcstats/internal/usecase"
)

const defaultChunkSize = 500

// SyncStore commits a whole sync cycle atomically. Each upsert splits its
// rows into fixed-size chunks to keep statements within Postgres parameter
// limits; the chunks still share one transaction.
type SyncStore struct {
	db        *sqlx.DB
	chunkSize int
}

func NewSyncStore(db *sqlx.DB, chunkSize int) *SyncStore {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &SyncStore{db: db, chunkSize: chunkSize}
}

func (s *SyncStore) InTx(ctx context.Context, fn func(w usecase.SyncWriter) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&syncWriter{tx: tx, chunkSize: s.chunkSize}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync tx: %w", err)
	}
	return nil
}

// execer is the slice of *sqlx.Tx the writer needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type syncWriter struct {
	tx        execer
	chunkSize int
}

func (w *syncWriter) UpsertEvents(ctx context.Context, rows []event.Event) error {
	models := make([]eventUpsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, eventToUpsertModel(row))
	}
	return upsertChunked(ctx, w.tx, "events", models, eventUpsertSuffix, w.chunkSize)
}

func (w *syncWriter) UpsertMatches(ctx context.Context, rows []match.Match) error {
	models := make([]matchUpsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, matchToUpsertModel(row))
	}
	return upsertChunked(ctx, w.tx, "matches", models, matchUpsertSuffix, w.chunkSize)
}

func (w *syncWriter) UpsertParticipations(ctx context.Context, rows []participation.Participation) error {
	models := make([]participationUpsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, participationToUpsertModel(row))
	}
	return upsertChunked(ctx, w.tx, "team_match_participations", models, participationUpsertSuffix, w.chunkSize)
}

func (w *syncWriter) UpsertScores2021(ctx context.Context, rows []scores2021.MatchScores) error {
	models := make([]scores2021UpsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, scores2021ToUpsertModel(row))
	}
	return upsertChunked(ctx, w.tx, "match_scores_2021", models, scores2021UpsertSuffix, w.chunkSize)
}

// PutCursor records the cycle's high-water mark. Callers invoke it last so a
// failed upsert never advances the cursor.
func (w *syncWriter) PutCursor(ctx context.Context, cursor syncmeta.Cursor) error {
	query, args, err := qb.InsertInto("sync_cursors").
		Columns("season", "kind", "fetched_at").
		Values(int16(cursor.Season), string(cursor.Kind), cursor.FetchedAt).
		Suffix("ON CONFLICT (season, kind) DO UPDATE SET fetched_at = EXCLUDED.fetched_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert sync cursor query: %w", err)
	}
	if _, err := w.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert sync cursor season=%d kind=%s: %w", cursor.Season, cursor.Kind, err)
	}
	return nil
}

func upsertChunked[T any](ctx context.Context, tx execer, table string, models []T, suffix string, chunkSize int) error {
	for _, chunk := range chunks(models, chunkSize) {
		query, args, err := qb.InsertModels(table, chunk, suffix)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s chunk of %d: %w", table, len(chunk), err)
		}
	}
	return nil
}

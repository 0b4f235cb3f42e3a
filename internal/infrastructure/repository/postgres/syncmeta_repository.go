package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
	qb "github.com/ftcstats/ftcstats/internal/platform/querybuilder"
)

type SyncCursorRepository struct {
	db *sqlx.DB
}

func NewSyncCursorRepository(db *sqlx.DB) *SyncCursorRepository {
	return &SyncCursorRepository{db: db}
}

func (r *SyncCursorRepository) LastFetch(ctx context.Context, s season.Season, kind syncmeta.Kind) (*time.Time, error) {
	query, args, err := qb.Select("fetched_at").From("sync_cursors").
		Where(
			qb.Eq("season", int16(s)),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sync cursor query: %w", err)
	}

	var fetchedAt time.Time
	if err := r.db.GetContext(ctx, &fetchedAt, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select sync cursor season=%d kind=%s: %w", s, kind, err)
	}
	return &fetchedAt, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ftcstats/ftcstats/internal/domain/season"
	qb "github.com/ftcstats/ftcstats/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListCodesBySeason(ctx context.Context, s season.Season) ([]string, error) {
	query, args, err := qb.Select("code").From("events").
		Where(qb.Eq("season", int16(s))).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event codes query: %w", err)
	}

	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query, args...); err != nil {
		return nil, fmt.Errorf("select event codes season=%d: %w", s, err)
	}
	return codes, nil
}

// ListCodesForWindow returns published events that were ongoing anytime
// between the last sync and now, with a one-day leeway, plus events the
// upstream updated since the last sync.
func (r *EventRepository) ListCodesForWindow(ctx context.Context, s season.Season, since, now time.Time) ([]string, error) {
	leeway := since.Add(-24 * time.Hour)
	query, args, err := qb.Select("code").From("events").
		Where(
			qb.Eq("season", int16(s)),
			qb.Eq("published", true),
			qb.Expr("((start_at <= ? AND end_at >= ?) OR (updated_at > ? AND updated_at <= ?))",
				now, leeway, since, now),
		).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event window query: %w", err)
	}

	var codes []string
	if err := r.db.SelectContext(ctx, &codes, query, args...); err != nil {
		return nil, fmt.Errorf("select event window season=%d: %w", s, err)
	}
	return codes, nil
}

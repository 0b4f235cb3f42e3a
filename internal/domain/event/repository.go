package event

import (
	"context"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

// Repository exposes the event reads the match sync window selection needs.
type Repository interface {
	// ListCodesBySeason returns every event code of the season.
	ListCodesBySeason(ctx context.Context, s season.Season) ([]string, error)
	// ListCodesForWindow returns codes of published events that were ongoing
	// anytime between since and now, or whose metadata changed in (since, now].
	ListCodesForWindow(ctx context.Context, s season.Season, since, now time.Time) ([]string, error)
}

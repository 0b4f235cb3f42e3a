package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/event"
	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
)

// EventSyncService keeps a season's event listing in step with the upstream.
// Each cycle fetches everything on first sync, or only rows modified since the
// stored cursor, and commits rows and cursor in one transaction.
type EventSyncService struct {
	provider FTCDataProvider
	cursors  syncmeta.Repository
	store    SyncStore
	logger   *logging.Logger
	now      func() time.Time
}

func NewEventSyncService(
	provider FTCDataProvider,
	cursors syncmeta.Repository,
	store SyncStore,
	logger *logging.Logger,
) *EventSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventSyncService{
		provider: provider,
		cursors:  cursors,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *EventSyncService) Sync(ctx context.Context, se season.Season) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventSyncService.Sync")
	defer span.End()

	if s.provider == nil || s.cursors == nil || s.store == nil {
		return 0, fmt.Errorf("%w: event sync service is not fully configured", ErrDependencyUnavailable)
	}

	since, err := s.cursors.LastFetch(ctx, se, syncmeta.KindEvents)
	if err != nil {
		return 0, fmt.Errorf("load events cursor season=%d: %w", se, err)
	}

	// Captured before the fetch so anything modified mid-cycle is picked up
	// again next time.
	fetchStart := s.now()

	s.logger.InfoContext(ctx, "syncing season events", "season", int(se), "incremental", since != nil)

	external, err := s.provider.FetchSeasonEvents(ctx, se, since)
	if err != nil {
		return 0, fmt.Errorf("fetch events season=%d: %w", se, err)
	}

	rows := make([]event.Event, 0, len(external))
	for _, item := range external {
		rows = append(rows, mapExternalEvent(se, item))
	}

	err = s.store.InTx(ctx, func(w SyncWriter) error {
		if len(rows) > 0 {
			if err := w.UpsertEvents(ctx, rows); err != nil {
				return err
			}
		}
		return w.PutCursor(ctx, syncmeta.Cursor{
			Season:    se,
			Kind:      syncmeta.KindEvents,
			FetchedAt: fetchStart,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("persist events season=%d: %w", se, err)
	}

	s.logger.InfoContext(ctx, "season events synced", "season", int(se), "events", len(rows))
	return len(rows), nil
}

func mapExternalEvent(se season.Season, item ExternalEvent) event.Event {
	eventType, _ := strconv.Atoi(strings.TrimSpace(item.Type))
	return event.Event{
		Season:          se,
		Code:            item.Code,
		EventID:         item.EventID,
		DivisionCode:    nullableString(item.DivisionCode),
		Name:            item.Name,
		Remote:          item.Remote,
		Hybrid:          item.Hybrid,
		FieldCount:      item.FieldCount,
		Published:       item.Published,
		Type:            eventType,
		RegionCode:      nullableString(item.RegionCode),
		LeagueCode:      nullableString(item.LeagueCode),
		DistrictCode:    nullableString(item.DistrictCode),
		Venue:           nullableString(item.Venue),
		Address:         nullableString(item.Address),
		Country:         nullableString(item.Country),
		StateOrProvince: nullableString(item.StateProv),
		City:            nullableString(item.City),
		Website:         nullableString(item.Website),
		LiveStreamURL:   nullableString(item.LiveStreamURL),
		Webcasts:        item.Webcasts,
		Timezone:        nullableString(item.Timezone),
		Start:           derefTime(item.DateStart),
		End:             derefTime(item.DateEnd),
	}
}

// nullableString maps the API's "" placeholders to NULL.
func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

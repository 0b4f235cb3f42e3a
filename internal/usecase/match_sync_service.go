package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/ftcstats/ftcstats/internal/domain/event"
	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
	"github.com/ftcstats/ftcstats/internal/domain/scores2021"
	"github.com/ftcstats/ftcstats/internal/domain/season"
	"github.com/ftcstats/ftcstats/internal/domain/syncmeta"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
)

const defaultEventBatchSize = 25

type MatchSyncConfig struct {
	// EventBatchSize bounds both the batch of event codes processed together
	// and the number of concurrent upstream fetches within the batch.
	EventBatchSize int
	LevelMapper    match.LevelMapper
}

// MatchSyncService pulls match schedules, participations and detailed scores
// for every event in the sync window and commits the whole cycle atomically.
type MatchSyncService struct {
	provider FTCDataProvider
	cursors  syncmeta.Repository
	events   event.Repository
	store    SyncStore
	cfg      MatchSyncConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewMatchSyncService(
	provider FTCDataProvider,
	cursors syncmeta.Repository,
	events event.Repository,
	store SyncStore,
	cfg MatchSyncConfig,
	logger *logging.Logger,
) *MatchSyncService {
	if cfg.EventBatchSize <= 0 {
		cfg.EventBatchSize = defaultEventBatchSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSyncService{
		provider: provider,
		cursors:  cursors,
		events:   events,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// eventPayload is one event's fetched matches and scores, ready to transform.
type eventPayload struct {
	eventCode string
	matches   []ExternalMatch
	scores    []ExternalMatchScores
}

// cycleRows accumulates every row produced by one sync cycle.
type cycleRows struct {
	matches        []match.Match
	participations []participation.Participation
	scores         []scores2021.MatchScores
}

func (s *MatchSyncService) Sync(ctx context.Context, se season.Season) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSyncService.Sync")
	defer span.End()

	if s.provider == nil || s.cursors == nil || s.events == nil || s.store == nil {
		return 0, fmt.Errorf("%w: match sync service is not fully configured", ErrDependencyUnavailable)
	}
	if !season.HasScoring(se) {
		return 0, fmt.Errorf("%w: season=%d", ErrUnsupportedSeason, se)
	}

	since, err := s.cursors.LastFetch(ctx, se, syncmeta.KindMatches)
	if err != nil {
		return 0, fmt.Errorf("load matches cursor season=%d: %w", se, err)
	}
	fetchStart := s.now()

	eventCodes, err := s.eventCodesForWindow(ctx, se, since, fetchStart)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "syncing matches",
		"season", int(se),
		"events", len(eventCodes),
		"incremental", since != nil,
	)

	var rows cycleRows
	for start := 0; start < len(eventCodes); start += s.cfg.EventBatchSize {
		end := start + s.cfg.EventBatchSize
		if end > len(eventCodes) {
			end = len(eventCodes)
		}

		payloads, err := s.fetchBatch(ctx, se, eventCodes[start:end])
		if err != nil {
			return 0, err
		}
		for _, payload := range payloads {
			if err := s.transformEvent(ctx, se, payload, &rows); err != nil {
				return 0, err
			}
		}
	}

	err = s.store.InTx(ctx, func(w SyncWriter) error {
		if len(rows.matches) > 0 {
			if err := w.UpsertMatches(ctx, rows.matches); err != nil {
				return err
			}
		}
		if len(rows.participations) > 0 {
			if err := w.UpsertParticipations(ctx, rows.participations); err != nil {
				return err
			}
		}
		if len(rows.scores) > 0 {
			if err := w.UpsertScores2021(ctx, rows.scores); err != nil {
				return err
			}
		}
		return w.PutCursor(ctx, syncmeta.Cursor{
			Season:    se,
			Kind:      syncmeta.KindMatches,
			FetchedAt: fetchStart,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("persist matches season=%d: %w", se, err)
	}

	s.logger.InfoContext(ctx, "matches synced",
		"season", int(se),
		"matches", len(rows.matches),
		"participations", len(rows.participations),
		"score_rows", len(rows.scores),
	)
	return len(rows.matches), nil
}

func (s *MatchSyncService) eventCodesForWindow(ctx context.Context, se season.Season, since *time.Time, now time.Time) ([]string, error) {
	if since == nil {
		codes, err := s.events.ListCodesBySeason(ctx, se)
		if err != nil {
			return nil, fmt.Errorf("list event codes season=%d: %w", se, err)
		}
		return codes, nil
	}
	codes, err := s.events.ListCodesForWindow(ctx, se, *since, now)
	if err != nil {
		return nil, fmt.Errorf("list event window season=%d: %w", se, err)
	}
	return codes, nil
}

// fetchBatch pulls one batch's matches and scores concurrently. The shared
// rate limiter below the provider keeps the actual request rate flat no
// matter how wide the batch is.
func (s *MatchSyncService) fetchBatch(ctx context.Context, se season.Season, codes []string) ([]eventPayload, error) {
	p := pool.NewWithResults[eventPayload]().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.EventBatchSize).
		WithCancelOnError()

	for _, code := range codes {
		code := code
		p.Go(func(ctx context.Context) (eventPayload, error) {
			matches, err := s.provider.FetchEventMatches(ctx, se, code)
			if err != nil {
				return eventPayload{}, fmt.Errorf("fetch matches event=%s: %w", code, err)
			}
			scores, err := s.provider.FetchEventScores(ctx, se, code)
			if err != nil {
				return eventPayload{}, fmt.Errorf("fetch scores event=%s: %w", code, err)
			}
			return eventPayload{eventCode: code, matches: matches, scores: scores}, nil
		})
	}
	return p.Wait()
}

func (s *MatchSyncService) transformEvent(ctx context.Context, se season.Season, payload eventPayload, rows *cycleRows) error {
	for _, m := range payload.matches {
		level, ok := s.cfg.LevelMapper.Level(m.TournamentLevel)
		if !ok {
			return fmt.Errorf("%w: unknown tournament level %q event=%s", ErrMalformedPayload, m.TournamentLevel, payload.eventCode)
		}

		isRemote := len(m.Teams) == 1
		var matchID int
		if isRemote {
			matchID = match.EncodeRemoteID(m.Teams[0].TeamNumber, m.MatchNumber)
		} else {
			matchID = match.EncodeTraditionalID(level, m.Series, m.MatchNumber)
		}

		rows.matches = append(rows.matches, match.Match{
			Season:             se,
			EventCode:          payload.eventCode,
			ID:                 matchID,
			HasBeenPlayed:      m.PostResultTime != nil,
			ScheduledStartTime: m.StartTime,
			ActualStartTime:    m.ActualStartTime,
			PostResultTime:     m.PostResultTime,
			TournamentLevel:    level,
			Series:             m.Series,
		})

		scoreRows, err := s.correlateScores(se, payload.eventCode, matchID, payload.scores)
		if err != nil {
			return err
		}
		rows.scores = append(rows.scores, scoreRows...)

		for _, team := range m.Teams {
			// Bye slots come through as team number zero.
			if team.TeamNumber == 0 {
				continue
			}
			station, ok := participation.StationFromAPI(team.Station)
			if !ok {
				s.logger.WarnContext(ctx, "skipping participation with unknown station",
					"event", payload.eventCode,
					"match_id", matchID,
					"station", team.Station,
				)
				continue
			}
			rows.participations = append(rows.participations, participation.Participation{
				Season:       se,
				EventCode:    payload.eventCode,
				MatchID:      matchID,
				TeamNumber:   team.TeamNumber,
				Station:      station,
				Surrogate:    team.Surrogate,
				NoShow:       team.NoShow,
				Disqualified: team.DQ,
				OnField:      team.OnField,
			})
		}
	}
	return nil
}

// correlateScores finds the score payload belonging to a match by re-deriving
// each payload's match id with the same codec and comparing.
func (s *MatchSyncService) correlateScores(se season.Season, eventCode string, matchID int, scores []ExternalMatchScores) ([]scores2021.MatchScores, error) {
	for _, ms := range scores {
		derivedID, err := s.scoreMatchID(ms, eventCode)
		if err != nil {
			return nil, err
		}
		if derivedID != matchID {
			continue
		}

		switch ms.Kind {
		case ExternalScoresRemote:
			row := scores2021.FromRemote(se, eventCode, matchID, ms.Remote.Randomization, remoteInput(ms.Remote.Scores))
			return []scores2021.MatchScores{row}, nil
		default:
			out := make([]scores2021.MatchScores, 0, len(ms.Traditional.Alliances))
			for _, alliance := range ms.Traditional.Alliances {
				input, err := tradInput(alliance)
				if err != nil {
					return nil, fmt.Errorf("%w: event=%s match_id=%d: %v", ErrMalformedPayload, eventCode, matchID, err)
				}
				out = append(out, scores2021.FromTraditional(se, eventCode, matchID, ms.Traditional.Randomization, input))
			}
			return out, nil
		}
	}
	return nil, nil
}

func (s *MatchSyncService) scoreMatchID(ms ExternalMatchScores, eventCode string) (int, error) {
	if ms.Kind == ExternalScoresRemote {
		return match.EncodeRemoteID(ms.Remote.TeamNumber, ms.Remote.MatchNumber), nil
	}
	level, ok := s.cfg.LevelMapper.Level(ms.Traditional.MatchLevel)
	if !ok {
		return 0, fmt.Errorf("%w: unknown score match level %q event=%s", ErrMalformedPayload, ms.Traditional.MatchLevel, eventCode)
	}
	return match.EncodeTraditionalID(level, ms.Traditional.MatchSeries, ms.Traditional.MatchNumber), nil
}

func tradInput(a ExternalAllianceScores) (scores2021.TraditionalAllianceInput, error) {
	alliance, err := scores2021.AllianceFromAPI(a.Alliance)
	if err != nil {
		return scores2021.TraditionalAllianceInput{}, err
	}
	return scores2021.TraditionalAllianceInput{
		Alliance:                       alliance,
		BarcodeElement1:                scores2021.BarcodeElementFromAPI(a.BarcodeElement1),
		BarcodeElement2:                scores2021.BarcodeElementFromAPI(a.BarcodeElement2),
		Carousel:                       a.Carousel,
		AutoNavigated1:                 scores2021.AutoNavigationFromAPI(a.AutoNavigated1),
		AutoNavigated2:                 scores2021.AutoNavigationFromAPI(a.AutoNavigated2),
		AutoBonus1:                     a.AutoBonus1,
		AutoBonus2:                     a.AutoBonus2,
		AutoStorageFreight:             a.AutoStorageFreight,
		AutoFreight1:                   a.AutoFreight1,
		AutoFreight2:                   a.AutoFreight2,
		AutoFreight3:                   a.AutoFreight3,
		DriverControlledStorageFreight: a.DriverControlledStorageFreight,
		DriverControlledFreight1:       a.DriverControlledFreight1,
		DriverControlledFreight2:       a.DriverControlledFreight2,
		DriverControlledFreight3:       a.DriverControlledFreight3,
		SharedFreight:                  a.SharedFreight,
		EndgameDelivered:               a.EndgameDelivered,
		AllianceBalanced:               a.AllianceBalanced,
		SharedUnbalanced:               a.SharedUnbalanced,
		EndgameParked1:                 scores2021.EndgameParkFromAPI(a.EndgameParked1),
		EndgameParked2:                 scores2021.EndgameParkFromAPI(a.EndgameParked2),
		Capped:                         a.Capped,
		MinorPenalties:                 a.MinorPenalties,
		MajorPenalties:                 a.MajorPenalties,
	}, nil
}

func remoteInput(s ExternalRemoteScoreSet) scores2021.RemoteInput {
	return scores2021.RemoteInput{
		BarcodeElement:                 scores2021.BarcodeElementFromAPI(s.BarcodeElement),
		Carousel:                       s.Carousel,
		AutoNavigated:                  scores2021.AutoNavigationFromAPI(s.AutoNavigated),
		AutoBonus:                      s.AutoBonus,
		AutoStorageFreight:             s.AutoStorageFreight,
		AutoFreight1:                   s.AutoFreight1,
		AutoFreight2:                   s.AutoFreight2,
		AutoFreight3:                   s.AutoFreight3,
		DriverControlledStorageFreight: s.DriverControlledStorageFreight,
		DriverControlledFreight1:       s.DriverControlledFreight1,
		DriverControlledFreight2:       s.DriverControlledFreight2,
		DriverControlledFreight3:       s.DriverControlledFreight3,
		EndgameDelivered:               s.EndgameDelivered,
		AllianceBalanced:               s.AllianceBalanced,
		EndgameParked:                  scores2021.EndgameParkFromAPI(s.EndgameParked),
		Capped:                         s.Capped,
		MinorPenalties:                 s.MinorPenalties,
		MajorPenalties:                 s.MajorPenalties,
	}
}

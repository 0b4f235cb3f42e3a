package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

type stubSeasonSyncer struct {
	mu      sync.Mutex
	records int
	err     error
	calls   []season.Season
}

func (s *stubSeasonSyncer) Sync(_ context.Context, se season.Season) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, se)
	return s.records, s.err
}

func newRunner(events, matches seasonSyncer) *SyncRunner {
	return &SyncRunner{events: events, matches: matches}
}

func TestRunFansOutSeasonsAndDatasets(t *testing.T) {
	t.Parallel()

	events := &stubSeasonSyncer{records: 12}
	matches := &stubSeasonSyncer{records: 340}
	runner := newRunner(events, matches)

	result, err := runner.Run(context.Background(), SyncRunInput{
		Seasons:  []int{2021, 2020},
		SyncData: []string{"events", "matches"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.SeasonCount != 2 || result.TaskCount != 4 {
		t.Fatalf("seasons=%d tasks=%d, want 2/4", result.SeasonCount, result.TaskCount)
	}
	if result.SuccessCount != 4 || result.FailedCount != 0 {
		t.Fatalf("success=%d failed=%d, want 4/0", result.SuccessCount, result.FailedCount)
	}
	if len(result.Tasks) != 4 {
		t.Fatalf("expected 4 task rows, got %d", len(result.Tasks))
	}
	// Rows come back sorted by season then dataset.
	if result.Tasks[0].Season != 2020 || result.Tasks[0].SyncData != "events" {
		t.Fatalf("unexpected first row %+v", result.Tasks[0])
	}
	if result.Tasks[3].Season != 2021 || result.Tasks[3].SyncData != "matches" {
		t.Fatalf("unexpected last row %+v", result.Tasks[3])
	}
	if result.Tasks[3].Records != 340 {
		t.Fatalf("match records = %d, want 340", result.Tasks[3].Records)
	}
}

func TestRunOrdersEventsBeforeMatchesWithinASeason(t *testing.T) {
	t.Parallel()

	var order []string
	var mu sync.Mutex
	events := syncerFunc(func(se season.Season) (int, error) {
		mu.Lock()
		order = append(order, "events")
		mu.Unlock()
		return 0, nil
	})
	matches := syncerFunc(func(se season.Season) (int, error) {
		mu.Lock()
		order = append(order, "matches")
		mu.Unlock()
		return 0, nil
	})

	_, err := newRunner(events, matches).Run(context.Background(), SyncRunInput{
		Seasons:  []int{2021},
		SyncData: []string{"matches", "events"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(order) != 2 || order[0] != "events" || order[1] != "matches" {
		t.Fatalf("execution order %v, want [events matches]", order)
	}
}

func TestRunDeduplicatesSeasonsAndKinds(t *testing.T) {
	t.Parallel()

	events := &stubSeasonSyncer{}
	runner := newRunner(events, &stubSeasonSyncer{})

	result, err := runner.Run(context.Background(), SyncRunInput{
		Seasons:  []int{2021, 2021},
		SyncData: []string{"events", "event", "EVENTS"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.TaskCount != 1 {
		t.Fatalf("task count = %d, want 1", result.TaskCount)
	}
	if len(events.calls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(events.calls))
	}
	if len(result.RequestedData) != 1 || result.RequestedData[0] != "events" {
		t.Fatalf("requested data %v", result.RequestedData)
	}
}

func TestRunMarksUnsupportedSeasonSkipped(t *testing.T) {
	t.Parallel()

	matches := &stubSeasonSyncer{err: ErrUnsupportedSeason}
	result, err := newRunner(&stubSeasonSyncer{}, matches).Run(context.Background(), SyncRunInput{
		Seasons:  []int{2020},
		SyncData: []string{"matches"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.SkippedCount != 1 || result.FailedCount != 0 {
		t.Fatalf("skipped=%d failed=%d, want 1/0", result.SkippedCount, result.FailedCount)
	}
	if result.Tasks[0].Status != syncStatusSkipped {
		t.Fatalf("status = %q", result.Tasks[0].Status)
	}
}

func TestRunRecordsFailuresWithoutAborting(t *testing.T) {
	t.Parallel()

	events := &stubSeasonSyncer{err: errors.New("upstream down")}
	matches := &stubSeasonSyncer{records: 7}
	result, err := newRunner(events, matches).Run(context.Background(), SyncRunInput{
		Seasons:  []int{2021},
		SyncData: []string{"events", "matches"},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.FailedCount != 1 || result.SuccessCount != 1 {
		t.Fatalf("failed=%d success=%d, want 1/1", result.FailedCount, result.SuccessCount)
	}
	if result.Tasks[0].Message == "" {
		t.Fatal("failed task should carry the error message")
	}
	if len(matches.calls) != 1 {
		t.Fatal("match sync should still run after an events failure")
	}
}

func TestRunValidatesInput(t *testing.T) {
	t.Parallel()

	runner := newRunner(&stubSeasonSyncer{}, &stubSeasonSyncer{})

	if _, err := runner.Run(context.Background(), SyncRunInput{Seasons: []int{2021}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing sync_data: got %v", err)
	}
	if _, err := runner.Run(context.Background(), SyncRunInput{SyncData: []string{"events"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing seasons: got %v", err)
	}
	if _, err := runner.Run(context.Background(), SyncRunInput{Seasons: []int{2021}, SyncData: []string{"standings"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unsupported sync_data: got %v", err)
	}
	if _, err := runner.Run(context.Background(), SyncRunInput{Seasons: []int{-3}, SyncData: []string{"events"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid season: got %v", err)
	}
}

func TestNormalizeSyncWorkerCountBounds(t *testing.T) {
	t.Parallel()

	if got := normalizeSyncWorkerCount(0, 3); got != 1 {
		t.Fatalf("zero workers -> %d, want 1", got)
	}
	if got := normalizeSyncWorkerCount(8, 3); got != 2 {
		t.Fatalf("oversized pool -> %d, want 2", got)
	}
	if got := normalizeSyncWorkerCount(2, 1); got != 1 {
		t.Fatalf("more workers than seasons -> %d, want 1", got)
	}
}

type syncerFunc func(se season.Season) (int, error)

func (f syncerFunc) Sync(_ context.Context, se season.Season) (int, error) {
	return f(se)
}

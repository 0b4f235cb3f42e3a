package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ftcstats/ftcstats/internal/domain/season"
)

type SyncRunInput struct {
	Seasons    []int
	SyncData   []string
	MaxWorkers int
}

type SyncRunResult struct {
	SeasonCount   int              `json:"season_count"`
	TaskCount     int              `json:"task_count"`
	SuccessCount  int              `json:"success_count"`
	FailedCount   int              `json:"failed_count"`
	SkippedCount  int              `json:"skipped_count"`
	WorkerCount   int              `json:"worker_count"`
	Tasks         []SyncTaskResult `json:"tasks"`
	RequestedData []string         `json:"requested_data"`
}

type SyncTaskResult struct {
	Season     int    `json:"season"`
	SyncData   string `json:"sync_data"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type syncDataKind string

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"

	syncDataEvents  syncDataKind = "events"
	syncDataMatches syncDataKind = "matches"
)

// kindRunOrder fixes the within-season execution order: matches resolve their
// event window from rows the events cycle wrote, so events always run first.
var kindRunOrder = []syncDataKind{syncDataEvents, syncDataMatches}

type seasonSyncer interface {
	Sync(ctx context.Context, se season.Season) (int, error)
}

// SyncRunner fans one sync request out over (season, dataset) tasks. Seasons
// run concurrently on a bounded worker pool; the datasets of one season run
// sequentially in dependency order.
type SyncRunner struct {
	events  seasonSyncer
	matches seasonSyncer
}

func NewSyncRunner(events *EventSyncService, matches *MatchSyncService) *SyncRunner {
	return &SyncRunner{events: events, matches: matches}
}

func (r *SyncRunner) Run(ctx context.Context, input SyncRunInput) (SyncRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncRunner.Run")
	defer span.End()

	if r.events == nil || r.matches == nil {
		return SyncRunResult{}, fmt.Errorf("%w: sync runner is not fully configured", ErrDependencyUnavailable)
	}

	kinds, rawKinds, err := normalizeSyncKinds(input.SyncData)
	if err != nil {
		return SyncRunResult{}, err
	}
	seasons, err := normalizeSyncSeasons(input.Seasons)
	if err != nil {
		return SyncRunResult{}, err
	}

	taskCount := len(seasons) * len(kinds)
	workerCount := normalizeSyncWorkerCount(input.MaxWorkers, len(seasons))
	result := SyncRunResult{
		SeasonCount:   len(seasons),
		TaskCount:     taskCount,
		WorkerCount:   workerCount,
		RequestedData: rawKinds,
		Tasks:         make([]SyncTaskResult, 0, taskCount),
	}
	if taskCount == 0 {
		return result, nil
	}

	results := make(chan SyncTaskResult, taskCount)

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncRunResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, se := range seasons {
		se := se
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			for _, kind := range kindRunOrder {
				if _, wanted := kinds[kind]; !wanted {
					continue
				}

				start := time.Now()
				records, status, message := r.runTask(ctx, se, kind)
				results <- SyncTaskResult{
					Season:     int(se),
					SyncData:   string(kind),
					Status:     status,
					Records:    records,
					Message:    message,
					DurationMs: time.Since(start).Milliseconds(),
				}

				switch status {
				case syncStatusSuccess:
					successCount.Add(1)
				case syncStatusSkipped:
					skippedCount.Add(1)
				default:
					failedCount.Add(1)
				}
			}
		}); err != nil {
			workers.Done()
			return SyncRunResult{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Season != result.Tasks[j].Season {
			return result.Tasks[i].Season < result.Tasks[j].Season
		}
		return result.Tasks[i].SyncData < result.Tasks[j].SyncData
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

func (r *SyncRunner) runTask(ctx context.Context, se season.Season, kind syncDataKind) (int, string, string) {
	var (
		records int
		err     error
	)
	switch kind {
	case syncDataEvents:
		records, err = r.events.Sync(ctx, se)
	case syncDataMatches:
		records, err = r.matches.Sync(ctx, se)
	default:
		return 0, syncStatusSkipped, "unsupported sync_data"
	}
	if errors.Is(err, ErrUnsupportedSeason) {
		return 0, syncStatusSkipped, err.Error()
	}
	if err != nil {
		return 0, syncStatusFailed, err.Error()
	}
	return records, syncStatusSuccess, ""
}

func normalizeSyncKinds(raw []string) (map[syncDataKind]struct{}, []string, error) {
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}

	kinds := make(map[syncDataKind]struct{}, len(raw))
	requested := make([]string, 0, len(raw))
	for _, item := range raw {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		kind, ok := toSyncDataKind(normalized)
		if !ok {
			return nil, nil, fmt.Errorf("%w: unsupported sync_data=%s", ErrInvalidInput, item)
		}
		if _, exists := kinds[kind]; exists {
			continue
		}
		kinds[kind] = struct{}{}
		requested = append(requested, string(kind))
	}
	if len(kinds) == 0 {
		return nil, nil, fmt.Errorf("%w: sync_data is required", ErrInvalidInput)
	}
	return kinds, requested, nil
}

func toSyncDataKind(value string) (syncDataKind, bool) {
	switch value {
	case "events", "event":
		return syncDataEvents, true
	case "matches", "match", "scores":
		return syncDataMatches, true
	default:
		return "", false
	}
}

func normalizeSyncSeasons(raw []int) ([]season.Season, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}

	seen := make(map[season.Season]struct{}, len(raw))
	out := make([]season.Season, 0, len(raw))
	for _, item := range raw {
		if item <= 0 {
			return nil, fmt.Errorf("%w: invalid season=%d", ErrInvalidInput, item)
		}
		se := season.Season(item)
		if _, exists := seen[se]; exists {
			continue
		}
		seen[se] = struct{}{}
		out = append(out, se)
	}
	return out, nil
}

func normalizeSyncWorkerCount(value int, seasonCount int) int {
	if seasonCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	// The upstream rate limiter flattens throughput anyway, so a wide pool
	// only adds contention.
	if value > 2 {
		value = 2
	}
	if value > seasonCount {
		value = seasonCount
	}
	return value
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/domain/participation"
	"github.com/ftcstats/ftcstats/internal/domain/season"
)

type fakeExecer struct {
	queries []string
	failOn  int // 1-based statement index, 0 never fails
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	if f.failOn != 0 && len(f.queries) == f.failOn {
		return nil, errors.New("connection reset")
	}
	return nil, nil
}

func TestUpsertMatchesStopsAtFailedChunk(t *testing.T) {
	t.Parallel()

	rows := make([]match.Match, 5)
	for i := range rows {
		rows[i] = match.Match{Season: season.FreightFrenzy, EventCode: "USTXHO", ID: i + 1}
	}

	exec := &fakeExecer{failOn: 3}
	w := &syncWriter{tx: exec, chunkSize: 2}

	err := w.UpsertMatches(context.Background(), rows)
	if err == nil {
		t.Fatal("expected the third chunk to fail")
	}
	if !strings.Contains(err.Error(), "matches") {
		t.Fatalf("error should name the table: %v", err)
	}
	if len(exec.queries) != 3 {
		t.Fatalf("statements issued = %d, want 3 (failure stops the batch)", len(exec.queries))
	}
}

func TestUpsertMatchesWritesEveryChunkOnSuccess(t *testing.T) {
	t.Parallel()

	rows := make([]match.Match, 5)
	for i := range rows {
		rows[i] = match.Match{Season: season.FreightFrenzy, EventCode: "USTXHO", ID: i + 1}
	}

	exec := &fakeExecer{}
	w := &syncWriter{tx: exec, chunkSize: 2}

	if err := w.UpsertMatches(context.Background(), rows); err != nil {
		t.Fatalf("upsert matches: %v", err)
	}
	if len(exec.queries) != 3 {
		t.Fatalf("statements issued = %d, want 3", len(exec.queries))
	}
	for _, q := range exec.queries {
		if !strings.Contains(q, "ON CONFLICT (season, event_code, id)") {
			t.Fatalf("match upsert missing conflict target: %s", q)
		}
	}
}

func TestUpsertParticipationsConflictsOnStation(t *testing.T) {
	t.Parallel()

	exec := &fakeExecer{}
	w := &syncWriter{tx: exec, chunkSize: 2}

	rows := []participation.Participation{{
		Season:     season.FreightFrenzy,
		EventCode:  "USTXHO",
		MatchID:    5,
		TeamNumber: 8813,
		Station:    participation.StationRed1,
	}}
	if err := w.UpsertParticipations(context.Background(), rows); err != nil {
		t.Fatalf("upsert participations: %v", err)
	}
	if len(exec.queries) != 1 {
		t.Fatalf("statements issued = %d, want 1", len(exec.queries))
	}

	// The station is the slot identity; a schedule edit that swaps the
	// occupying team must update the row, not duplicate it.
	q := exec.queries[0]
	if !strings.Contains(q, "ON CONFLICT (season, event_code, match_id, station)") {
		t.Fatalf("participation upsert missing slot conflict target: %s", q)
	}
	if !strings.Contains(q, "team_number = EXCLUDED.team_number") {
		t.Fatalf("participation upsert should refresh the occupying team: %s", q)
	}
}

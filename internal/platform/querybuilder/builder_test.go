package querybuilder

import (
	"testing"
	"time"
)

func TestSelectWithConditions(t *testing.T) {
	since := time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := Select("code", "name").
		From("events").
		Where(
			Eq("season", 2021),
			Expr("(start >= ? OR updated_at > ?)", since, since),
			IsNull("deleted_at"),
		).
		OrderBy("code ASC").
		Limit(25).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT code, name FROM events WHERE season = $1 AND (start >= $2 OR updated_at > $3) AND deleted_at IS NULL ORDER BY code ASC LIMIT 25"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v, want 3 values", args)
	}
}

func TestInEmptySliceMatchesNothing(t *testing.T) {
	sql, args, err := Select("id").From("matches").Where(In("event_code", nil)).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if want := "SELECT id FROM matches WHERE 1=0"; sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestInsertMultiRowWithConflictSuffix(t *testing.T) {
	sql, args, err := InsertInto("sync_cursors").
		Columns("season", "kind", "fetched_at").
		Values(2021, "events", "t1").
		Values(2021, "matches", "t2").
		Suffix("ON CONFLICT (season, kind) DO UPDATE SET fetched_at = EXCLUDED.fetched_at").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO sync_cursors (season, kind, fetched_at) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (season, kind) DO UPDATE SET fetched_at = EXCLUDED.fetched_at"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 6 {
		t.Fatalf("args = %v, want 6 values", args)
	}
}

func TestInsertRejectsRaggedRows(t *testing.T) {
	_, _, err := InsertInto("events").
		Columns("season", "code").
		Values(2021).
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row with wrong arity")
	}
}

type cursorRow struct {
	Season    int    `db:"season"`
	Kind      string `db:"kind"`
	FetchedAt string `db:"fetched_at"`
	ignored   string
	Skipped   string `db:"-"`
}

func TestInsertModelsUsesDBTags(t *testing.T) {
	rows := []cursorRow{
		{Season: 2021, Kind: "events", FetchedAt: "t1"},
		{Season: 2021, Kind: "matches", FetchedAt: "t2"},
	}
	sql, args, err := InsertModels("sync_cursors", rows, "ON CONFLICT (season, kind) DO NOTHING")
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO sync_cursors (season, kind, fetched_at) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (season, kind) DO NOTHING"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 6 {
		t.Fatalf("args = %v, want 6 values", args)
	}
}

func TestInsertModelsRequiresRows(t *testing.T) {
	_, _, err := InsertModels[cursorRow]("sync_cursors", nil, "")
	if err == nil {
		t.Fatal("expected error for empty model slice")
	}
}

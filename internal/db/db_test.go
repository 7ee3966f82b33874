package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB opens an in-memory SQLite DB and runs migrations (for testing only).
func openTestDB(t *testing.T) *DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestDB_MigrateIsIdempotent(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var version int
	if err := d.sql.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}
}

func TestDB_RunRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	id, err := d.InsertRun(Run{
		Maze:       "eg2",
		Digest:     "abc123",
		Strategy:   "memo",
		Steps:      86,
		KeyOrder:   "abcdef",
		States:     21,
		MemoHits:   3,
		DurationMs: 4,
	})
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if id == "" {
		t.Fatal("InsertRun returned empty ID")
	}

	runs, err := d.GetRuns(5)
	if err != nil {
		t.Fatalf("GetRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("GetRuns(5) len = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != id {
		t.Errorf("ID = %q, want %q", r.ID, id)
	}
	if r.Maze != "eg2" || r.Strategy != "memo" || r.KeyOrder != "abcdef" {
		t.Errorf("Maze/Strategy/KeyOrder = %q/%q/%q", r.Maze, r.Strategy, r.KeyOrder)
	}
	if r.Steps != 86 || r.States != 21 || r.MemoHits != 3 || r.DurationMs != 4 {
		t.Errorf("numbers = %d/%d/%d/%d, want 86/21/3/4", r.Steps, r.States, r.MemoHits, r.DurationMs)
	}
	if r.Timestamp == "" {
		t.Error("Timestamp not assigned")
	}
}

func TestDB_GetRunsNewestFirstAndLastSteps(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	for i, steps := range []int{10, 20, 30} {
		_, err := d.InsertRun(Run{
			Timestamp: "2026-01-01T00:00:0" + string(rune('0'+i)) + "Z",
			Maze:      "m",
			Digest:    "same",
			Strategy:  "memo",
			Steps:     steps,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	runs, err := d.GetRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Steps != 30 || runs[1].Steps != 20 {
		t.Errorf("GetRuns(2) = %+v, want steps 30 then 20", runs)
	}
	if steps, ok := d.LastSteps("same", "memo"); !ok || steps != 30 {
		t.Errorf("LastSteps = %d, %v, want 30, true", steps, ok)
	}
	if _, ok := d.LastSteps("other", "memo"); ok {
		t.Error("LastSteps for unknown digest returned ok")
	}
}

func TestDB_LastStepsMatchesStrategy(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	runs := []Run{
		{Timestamp: "2026-01-01T00:00:00Z", Digest: "m", Strategy: "memo", Steps: 86},
		{Timestamp: "2026-01-01T00:00:01Z", Digest: "m", Strategy: "explore", Steps: 90},
	}
	for _, r := range runs {
		if _, err := d.InsertRun(r); err != nil {
			t.Fatal(err)
		}
	}
	if steps, ok := d.LastSteps("m", "memo"); !ok || steps != 86 {
		t.Errorf("LastSteps(memo) = %d, %v, want 86, true", steps, ok)
	}
	if steps, ok := d.LastSteps("m", "explore"); !ok || steps != 90 {
		t.Errorf("LastSteps(explore) = %d, %v, want 90, true", steps, ok)
	}
	if _, ok := d.LastSteps("m", "dijkstra"); ok {
		t.Error("LastSteps for unrecorded strategy returned ok")
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := d.InsertRun(Run{Maze: "x", Digest: "d", Strategy: "memo", Steps: 1}); err != nil {
		t.Errorf("InsertRun: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded solve.
type Run struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	Maze       string `json:"maze"`
	Digest     string `json:"digest"`
	Strategy   string `json:"strategy"`
	Steps      int    `json:"steps"`
	KeyOrder   string `json:"key_order"`
	States     int    `json:"states"`
	MemoHits   int    `json:"memo_hits"`
	DurationMs int64  `json:"duration_ms"`
}

// InsertRun stores r and returns its ID. A fresh ID and timestamp are
// assigned when r leaves them empty.
func (d *DB) InsertRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp == "" {
		r.Timestamp = time.Now().Format(time.RFC3339)
	}
	_, err := d.sql.Exec(
		`INSERT INTO solve_runs (id, timestamp, maze, digest, strategy, steps, key_order, states, memo_hits, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Timestamp, r.Maze, r.Digest, r.Strategy, r.Steps, r.KeyOrder, r.States, r.MemoHits, r.DurationMs,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return r.ID, nil
}

// GetRuns returns the last N runs (newest first).
func (d *DB) GetRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		`SELECT id, timestamp, maze, digest, strategy, steps, key_order, states, memo_hits, duration_ms
		 FROM solve_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Maze, &r.Digest, &r.Strategy, &r.Steps, &r.KeyOrder, &r.States, &r.MemoHits, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastSteps returns the answer most recently recorded for a maze digest
// solved with strategy.
func (d *DB) LastSteps(digest, strategy string) (int, bool) {
	var steps int
	err := d.sql.QueryRow(
		`SELECT steps FROM solve_runs WHERE digest = ? AND strategy = ?
		 ORDER BY timestamp DESC, rowid DESC LIMIT 1`,
		digest, strategy,
	).Scan(&steps)
	if err != nil {
		return 0, false
	}
	return steps, true
}

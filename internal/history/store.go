// Package history persists a summary of each analysis run to a local
// SQLite database so the ranking of a vault can be tracked over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    ran_at         TEXT NOT NULL,
    vault_path     TEXT NOT NULL,
    notes_analyzed INTEGER NOT NULL,
    materialized   INTEGER NOT NULL,
    top_note       TEXT NOT NULL DEFAULT '',
    top_score      REAL NOT NULL DEFAULT 0,
    iterations     INTEGER NOT NULL
);
`

// RunSummary is one analysis run's headline numbers.
type RunSummary struct {
	ID            int64
	RanAt         time.Time
	VaultPath     string
	NotesAnalyzed int
	Materialized  int
	TopNote       string
	TopScore      float64
	Iterations    int
}

// Store records run summaries in a local SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL
// mode and a busy timeout, and creates the schema if needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a lone pooled
	// connection keeps the PRAGMA setup consistent. WAL still lets
	// external readers in.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveRun inserts a run summary and returns its row ID.
func (s *Store) SaveRun(ctx context.Context, run RunSummary) (int64, error) {
	const q = `
		INSERT INTO runs (ran_at, vault_path, notes_analyzed, materialized, top_note, top_score, iterations)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		run.RanAt.UTC().Format(time.RFC3339),
		run.VaultPath,
		run.NotesAnalyzed,
		run.Materialized,
		run.TopNote,
		run.TopScore,
		run.Iterations,
	)
	if err != nil {
		return 0, fmt.Errorf("history: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: run id: %w", err)
	}
	return id, nil
}

// Runs returns the most recent run summaries, newest first. A limit of
// zero or less returns everything.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	q := `SELECT id, ran_at, vault_path, notes_analyzed, materialized, top_note, top_score, iterations
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var result []RunSummary
	for rows.Next() {
		var run RunSummary
		var ts string
		if err := rows.Scan(&run.ID, &ts, &run.VaultPath, &run.NotesAnalyzed,
			&run.Materialized, &run.TopNote, &run.TopScore, &run.Iterations); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		ranAt, parseErr := time.Parse(time.RFC3339, ts)
		if parseErr != nil {
			return nil, fmt.Errorf("history: parse run timestamp: %w", parseErr)
		}
		run.RanAt = ranAt
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return result, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

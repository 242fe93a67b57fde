// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records update runs in a SQLite database so the CLI and
// dashboard can show what the pipeline has done over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one pipeline execution as recorded in the database.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	State      string

	HouseCount  int
	SenateCount int

	NewCount     int
	UpdatedCount int
	RemovedCount int

	Error      string
	ReportPath string
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dbPath, creating the
// schema if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			state TEXT NOT NULL,
			house_count INTEGER NOT NULL DEFAULT 0,
			senate_count INTEGER NOT NULL DEFAULT 0,
			new_count INTEGER NOT NULL DEFAULT 0,
			updated_count INTEGER NOT NULL DEFAULT 0,
			removed_count INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			report_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save upserts a run record. The orchestrator calls it once when a run
// starts and again when it reaches a terminal state.
func (s *Store) Save(ctx context.Context, run Run) error {
	finished := ""
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, state, house_count, senate_count,
			new_count, updated_count, removed_count, error, report_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			finished_at=excluded.finished_at, state=excluded.state,
			house_count=excluded.house_count, senate_count=excluded.senate_count,
			new_count=excluded.new_count, updated_count=excluded.updated_count,
			removed_count=excluded.removed_count, error=excluded.error,
			report_path=excluded.report_path`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), finished, run.State,
		run.HouseCount, run.SenateCount,
		run.NewCount, run.UpdatedCount, run.RemovedCount,
		run.Error, run.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, most recently started first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, state, house_count, senate_count,
			new_count, updated_count, removed_count, error, report_path
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns one run by id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, state, house_count, senate_count,
			new_count, updated_count, removed_count, error, report_path
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	return run, err
}

func scanRun(scan func(...any) error) (Run, error) {
	var run Run
	var started, finished, runErr, reportPath sql.NullString
	if err := scan(&run.ID, &started, &finished, &run.State,
		&run.HouseCount, &run.SenateCount,
		&run.NewCount, &run.UpdatedCount, &run.RemovedCount,
		&runErr, &reportPath); err != nil {
		return Run{}, err
	}
	if started.Valid {
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started.String)
	}
	if finished.Valid && finished.String != "" {
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
	}
	run.Error = runErr.String
	run.ReportPath = reportPath.String
	return run, nil
}

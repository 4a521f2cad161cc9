// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists batch outcomes: a SQLite run log for querying
// past runs and per-document YAML sidecars next to the outputs.
package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/strip-engine/pkg/types"
)

const dbFile = "strip.db"

// Store manages the run-log SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the run log at reportDir/strip.db, creating
// the schema if it does not exist.
func NewStore(reportDir string) (*Store, error) {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	dbPath := filepath.Join(reportDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			stripped INTEGER NOT NULL DEFAULT 0,
			unmodified INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT,
			page_count INTEGER NOT NULL DEFAULT 0,
			retained_pages INTEGER NOT NULL DEFAULT 0,
			modified INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT,
			cuts TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BeginRun inserts a new run row and returns its id.
func (s *Store) BeginRun(startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at) VALUES (?)`,
		startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// RecordResult stores one processed document. A non-nil failErr marks the
// document failed; otherwise status reflects whether cuts were applied.
func (s *Store) RecordResult(runID int64, result types.StripResult, failErr error) error {
	status := "unmodified"
	if result.Modified {
		status = "stripped"
	}
	errText := ""
	if failErr != nil {
		status = "failed"
		errText = failErr.Error()
	}

	cutsJSON, err := json.Marshal(result.Cuts)
	if err != nil {
		return fmt.Errorf("marshaling cuts: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO documents (run_id, input, output, page_count, retained_pages, modified, status, error, cuts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, result.Input, result.Output, result.PageCount, result.RetainedPages,
		result.Modified, status, errText, string(cutsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// FinishRun stamps the run's end time and summary counts.
func (s *Store) FinishRun(runID int64, finishedAt time.Time, stripped, unmodified, failed int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, stripped = ?, unmodified = ?, failed = ? WHERE id = ?`,
		finishedAt.UTC().Format(time.RFC3339), stripped, unmodified, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	return nil
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

// DocumentCount returns the number of documents recorded for a run.
func (s *Store) DocumentCount(runID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

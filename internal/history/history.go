// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists build outcomes in a SQLite database so repeated
// compose runs can be inspected later (`manuscript-engine history`).
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Store manages the build history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the schema
// when absent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			project TEXT NOT NULL,
			target TEXT,
			status TEXT NOT NULL,
			pages INTEGER,
			duration_ms INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_builds_project ON builds(project)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one build report as a history row and returns its ID.
func (s *Store) Record(ctx context.Context, report types.BuildReport) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, project, target, status, pages, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, report.Project, report.Target, string(report.Status),
		report.Pages, report.Duration.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("recording build: %w", err)
	}
	return id, nil
}

// Recent returns the most recent build records, newest first. A project
// filter narrows the result when non-empty.
func (s *Store) Recent(ctx context.Context, project string, limit int) ([]types.BuildRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, project, target, status, pages, duration_ms, created_at
		  FROM builds`
	args := []any{}
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying build history: %w", err)
	}
	defer rows.Close()

	var records []types.BuildRecord
	for rows.Next() {
		var (
			rec        types.BuildRecord
			status     string
			durationMS int64
			created    string
		)
		if err := rows.Scan(&rec.ID, &rec.Project, &rec.Target, &status, &rec.Pages, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("scanning build row: %w", err)
		}
		rec.Status = types.BuildStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Package persistence keeps a small SQLite history of translation runs:
// which file ran, how far it got, and how it ended. Translated entries
// themselves are never persisted; results live only for the session.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// RunRecord is the stored bookkeeping for one run.
type RunRecord struct {
	ID           string
	SubtitlePath string
	VideoPath    string
	Phase        string
	Progress     int
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	subtitle_path TEXT NOT NULL,
	video_path    TEXT NOT NULL DEFAULT '',
	phase         TEXT NOT NULL,
	progress      INTEGER NOT NULL DEFAULT 0,
	error         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_subtitle_path ON runs(subtitle_path);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveRun inserts a new run record.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	const query = `
INSERT INTO runs (id, subtitle_path, video_path, phase, progress, error, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.SubtitlePath, rec.VideoPath, rec.Phase,
		rec.Progress, rec.Error, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// UpdateRun records the latest phase, progress, and error of a run.
func (s *Store) UpdateRun(ctx context.Context, id, phase string, progress int, errMsg string) error {
	const query = `
UPDATE runs SET phase = ?, progress = ?, error = ?, updated_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query, phase, progress, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update run %s: %w", id, err)
	}
	return nil
}

// GetRun loads a single run record.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	const query = `
SELECT id, subtitle_path, video_path, phase, progress, error, created_at, updated_at
FROM runs WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	var rec RunRecord
	err := row.Scan(&rec.ID, &rec.SubtitlePath, &rec.VideoPath, &rec.Phase,
		&rec.Progress, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &rec, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
SELECT id, subtitle_path, video_path, phase, progress, error, created_at, updated_at
FROM runs ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.SubtitlePath, &rec.VideoPath, &rec.Phase,
			&rec.Progress, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

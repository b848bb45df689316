package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Item statuses persisted in the journal.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

// Run describes one conversion run.
type Run struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	SourceDir string
	OutputDir string
	Format    string
	Succeeded int
	Failed    int
}

// Item is one per-file or per-page outcome.
type Item struct {
	Source string
	Page   int // 0 for single-image sources
	Target string
	Status string
	Detail string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, "report.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applySchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            started_at TEXT NOT NULL,
            ended_at TEXT,
            source_dir TEXT NOT NULL,
            output_dir TEXT NOT NULL,
            format TEXT NOT NULL,
            succeeded INTEGER NOT NULL DEFAULT 0,
            failed INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS run_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
            source TEXT NOT NULL,
            page INTEGER NOT NULL DEFAULT 0,
            target TEXT,
            status TEXT NOT NULL,
            detail TEXT,
            recorded_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_run_items_run ON run_items(run_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// BeginRun inserts the run row.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, source_dir, output_dir, format) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.SourceDir,
		run.OutputDir,
		run.Format,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordSuccess journals a converted file or page.
func (s *Store) RecordSuccess(ctx context.Context, runID, source string, page int, target string) error {
	return s.recordItem(ctx, runID, source, page, target, StatusConverted, "")
}

// RecordFailure journals a failed file or page.
func (s *Store) RecordFailure(ctx context.Context, runID, source string, page int, detail string) error {
	return s.recordItem(ctx, runID, source, page, "", StatusFailed, detail)
}

func (s *Store) recordItem(ctx context.Context, runID, source string, page int, target, status, detail string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO run_items (run_id, source, page, target, status, detail, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		source,
		page,
		nullableString(target),
		status,
		nullableString(detail),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run item: %w", err)
	}
	return nil
}

// FinishRun stamps the run row with its end time and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, succeeded, failed int) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET ended_at = ?, succeeded = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		succeeded,
		failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ErrNoRuns is returned when the journal is empty.
var ErrNoRuns = errors.New("no runs recorded")

// LastRun returns the most recent run and its items.
func (s *Store) LastRun(ctx context.Context) (*Run, []Item, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, started_at, COALESCE(ended_at, ''), source_dir, output_dir, format, succeeded, failed
         FROM runs ORDER BY started_at DESC LIMIT 1`,
	)

	var run Run
	var started, ended string
	if err := row.Scan(&run.ID, &started, &ended, &run.SourceDir, &run.OutputDir, &run.Format, &run.Succeeded, &run.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNoRuns
		}
		return nil, nil, fmt.Errorf("select last run: %w", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	if ended != "" {
		run.EndedAt, _ = time.Parse(time.RFC3339Nano, ended)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source, page, COALESCE(target, ''), status, COALESCE(detail, '')
         FROM run_items WHERE run_id = ? ORDER BY id`,
		run.ID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("select run items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.Source, &item.Page, &item.Target, &item.Status, &item.Detail); err != nil {
			return nil, nil, fmt.Errorf("scan run item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate run items: %w", err)
	}
	return &run, items, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fwarchive/internal/ingest"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one recorded catalog pass.
type Run struct {
	ID         string
	Kind       string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
	New        int
	Updated    int
	Skipped    int
	ErrorCount int
	Errors     []string
	Warnings   []string
	Detail     string
}

// Duration returns how long the run took, zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run history database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")
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
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Begin records the start of a run and returns its id.
func (s *Store) Begin(ctx context.Context, kind string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, status, started_at) VALUES (?, ?, ?, ?)`,
		id, kind, StatusRunning, now)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Complete marks a run finished and stores its change summary.
func (s *Store) Complete(ctx context.Context, id string, summary ingest.Summary) error {
	errorsJSON, err := json.Marshal(summary.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	warningsJSON, err := json.Marshal(summary.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ?,
            new_count = ?, updated_count = ?, skipped_count = ?, error_count = ?,
            errors_json = ?, warnings_json = ?
         WHERE id = ?`,
		StatusCompleted, now,
		summary.New, summary.Updated, summary.Skipped, len(summary.Errors),
		string(errorsJSON), string(warningsJSON), id)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return ensureOneRow(res, id)
}

// Fail marks a run failed with the cause.
func (s *Store) Fail(ctx context.Context, id string, cause error) error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, detail = ? WHERE id = ?`,
		StatusFailed, now, detail, id)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return ensureOneRow(res, id)
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, status, started_at, finished_at,
            new_count, updated_count, skipped_count, error_count,
            errors_json, warnings_json, detail
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, status, started_at, finished_at,
            new_count, updated_count, skipped_count, error_count,
            errors_json, warnings_json, detail
         FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s not found", id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                   Run
		startedAt             string
		finishedAt            sql.NullString
		errorsJSON, warnsJSON sql.NullString
		detail                sql.NullString
	)
	err := row.Scan(&run.ID, &run.Kind, &run.Status, &startedAt, &finishedAt,
		&run.New, &run.Updated, &run.Skipped, &run.ErrorCount,
		&errorsJSON, &warnsJSON, &detail)
	if err != nil {
		return Run{}, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
			return Run{}, fmt.Errorf("parse finished_at: %w", err)
		}
	}
	if errorsJSON.Valid && errorsJSON.String != "" {
		if err := json.Unmarshal([]byte(errorsJSON.String), &run.Errors); err != nil {
			return Run{}, fmt.Errorf("parse errors_json: %w", err)
		}
	}
	if warnsJSON.Valid && warnsJSON.String != "" {
		if err := json.Unmarshal([]byte(warnsJSON.String), &run.Warnings); err != nil {
			return Run{}, fmt.Errorf("parse warnings_json: %w", err)
		}
	}
	run.Detail = detail.String
	return run, nil
}

func ensureOneRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

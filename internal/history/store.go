package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cour/internal/notion"
	"cour/internal/services"
	"cour/internal/transfer"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

const lockRetryDelay = 50 * time.Millisecond

// timeLayout has a fixed-width fraction so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrSchemaMismatch indicates the database was created by an incompatible build.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Run is one recorded transfer run.
type Run struct {
	RunID          string             `json:"run_id"`
	Season         string             `json:"season"`
	DatabaseID     string             `json:"database_id,omitempty"`
	DryRun         bool               `json:"dry_run"`
	Status         services.RunStatus `json:"status"`
	StartedAt      time.Time          `json:"started_at"`
	FinishedAt     time.Time          `json:"finished_at"`
	TotalFetched   int                `json:"total_fetched"`
	TotalAttempted int                `json:"total_attempted"`
	TotalSucceeded int                `json:"total_succeeded"`
	FetchError     string             `json:"fetch_error,omitempty"`
}

// Store persists run reports in SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

var _ transfer.Recorder = (*Store)(nil)

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open", "database path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := store.initSchema(context.Background()); err != nil {
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Record stores a finished report and its outcomes in one transaction.
func (s *Store) Record(ctx context.Context, report *transfer.Report, status services.RunStatus) error {
	if report == nil {
		return errors.New("history: nil report")
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return errors.New("history lock unavailable")
	}
	defer func() { _ = s.lock.Unlock() }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, season, database_id, dry_run, status, started_at, finished_at,
            total_fetched, total_attempted, total_succeeded, fetch_error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Season,
		nullableString(report.DatabaseID),
		boolToInt(report.DryRun),
		string(status),
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		report.TotalFetched,
		report.TotalAttempted,
		report.TotalSucceeded,
		nullableString(report.FetchError),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for idx, outcome := range report.Outcomes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, position, title, succeeded, status_code, response_body)
             VALUES (?, ?, ?, ?, ?, ?)`,
			report.RunID, idx, outcome.Title, boolToInt(outcome.Succeeded), outcome.StatusCode,
			nullableString(outcome.ResponseBody),
		)
		if err != nil {
			return fmt.Errorf("insert outcome %d: %w", idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, most recently started first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, season, database_id, dry_run, status, started_at, finished_at,
                total_fetched, total_attempted, total_succeeded, fetch_error
         FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                  Run
			databaseID, fetchErr sql.NullString
			dryRun               int
			status               string
			started, finished    string
		)
		if err := rows.Scan(&run.RunID, &run.Season, &databaseID, &dryRun, &status, &started, &finished,
			&run.TotalFetched, &run.TotalAttempted, &run.TotalSucceeded, &fetchErr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DatabaseID = databaseID.String
		run.FetchError = fetchErr.String
		run.DryRun = dryRun != 0
		run.Status = services.RunStatus(status)
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Outcomes returns the recorded outcomes of one run in source order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]notion.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, succeeded, status_code, response_body
         FROM outcomes WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []notion.Outcome{}
	for rows.Next() {
		var (
			outcome   notion.Outcome
			succeeded int
			body      sql.NullString
		)
		if err := rows.Scan(&outcome.Title, &succeeded, &outcome.StatusCode, &body); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcome.Succeeded = succeeded != 0
		outcome.ResponseBody = body.String
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

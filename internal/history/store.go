package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"eyeset/internal/dataset"
)

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const runColumns = "run_id, archive_path, output_root, seed, validation_ratio, status, error_kind, error_message, found, skipped, train_open, train_closed, val_open, val_closed, started_at, finished_at"

// ErrRunNotFound is returned by Finish when no row matches the run id.
var ErrRunNotFound = errors.New("run not found")

// Open creates or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history database path is empty")
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
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Begin records a run that has just started. Status and StartedAt are filled
// in when left empty.
func (s *Store) Begin(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.RunID) == "" {
		return errors.New("run id is required")
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (
            run_id, archive_path, output_root, seed, validation_ratio, status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.ArchivePath,
		run.OutputRoot,
		run.Seed,
		run.ValidationRatio,
		run.Status,
		formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Finish stores the outcome of a run. A non-nil report contributes its
// counts; a non-nil runErr contributes its error kind and message.
func (s *Store) Finish(ctx context.Context, runID string, status Status, report *dataset.Report, runErr error) error {
	var (
		found, skipped                             int
		trainOpen, trainClosed, valOpen, valClosed int
		errorKind, errorMessage                    any
	)
	if report != nil {
		found = report.Found
		skipped = report.Skipped
		trainOpen = report.Buckets.Train.Open
		trainClosed = report.Buckets.Train.Closed
		valOpen = report.Buckets.Val.Open
		valClosed = report.Buckets.Val.Closed
	}
	if runErr != nil {
		errorKind = dataset.Kind(runErr)
		errorMessage = runErr.Error()
	}

	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET
            status = ?, error_kind = ?, error_message = ?,
            found = ?, skipped = ?,
            train_open = ?, train_closed = ?, val_open = ?, val_closed = ?,
            finished_at = ?
        WHERE run_id = ?`,
		status,
		errorKind,
		errorMessage,
		found,
		skipped,
		trainOpen,
		trainClosed,
		valOpen,
		valClosed,
		formatTime(time.Now()),
		runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// Get fetches a run by id. A missing run returns nil without error.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first. A limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// MarkInterrupted fails every run still marked running against outputRoot
// that started before startedBefore, other than exceptRunID. A run that got
// past the output lock proves no earlier run on that root is alive, so those
// rows belong to processes that died before calling Finish. Runs started
// later may hold the lock by now and are left alone.
func (s *Store) MarkInterrupted(ctx context.Context, outputRoot, exceptRunID string, startedBefore time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, error_kind = ?, error_message = ?, finished_at = ?
        WHERE output_root = ? AND run_id != ? AND status = ? AND started_at < ?`,
		StatusFailed,
		"interrupted",
		"run did not finish",
		formatTime(time.Now()),
		outputRoot,
		exceptRunID,
		StatusRunning,
		formatTime(startedBefore),
	)
	if err != nil {
		return 0, fmt.Errorf("mark interrupted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		statusStr    string
		errorKind    sql.NullString
		errorMessage sql.NullString
		startedRaw   string
		finishedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&run.RunID,
		&run.ArchivePath,
		&run.OutputRoot,
		&run.Seed,
		&run.ValidationRatio,
		&statusStr,
		&errorKind,
		&errorMessage,
		&run.Found,
		&run.Skipped,
		&run.TrainOpen,
		&run.TrainClosed,
		&run.ValOpen,
		&run.ValClosed,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run.Status = Status(statusStr)
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMessage.String
	if started, err := parseTime(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTime(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists runs to SQLite.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite history store.
// The path should be a file path (e.g., "~/.local/state/qs/history.db") or
// ":memory:" for testing. The parent directory must exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	// WAL lets concurrent qs invocations read while one records.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			action TEXT NOT NULL,
			source TEXT NOT NULL,
			template TEXT NOT NULL,
			command TEXT NOT NULL,
			dry_run INTEGER NOT NULL,
			exit_code INTEGER NOT NULL,
			started TEXT NOT NULL,
			duration_ns INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_runs_action
		ON runs(action)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record implements Store.
func (s *SQLiteStore) Record(run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Run{}, ErrStoreClosed
	}

	run = prepare(run)
	_, err := s.db.Exec(`
		INSERT INTO runs (id, action, source, template, command, dry_run, exit_code, started, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			action = excluded.action,
			source = excluded.source,
			template = excluded.template,
			command = excluded.command,
			dry_run = excluded.dry_run,
			exit_code = excluded.exit_code,
			started = excluded.started,
			duration_ns = excluded.duration_ns
	`, run.ID, run.Action, run.Source, run.Template, run.Command,
		run.DryRun, run.ExitCode, run.Started.Format(time.RFC3339Nano), int64(run.Duration))
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

const selectRuns = `
	SELECT id, action, source, template, command, dry_run, exit_code, started, duration_ns
	FROM runs`

// Get implements Store.
func (s *SQLiteStore) Get(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Run{}, ErrStoreClosed
	}

	run, err := scanRun(s.db.QueryRow(selectRuns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List implements Store.
func (s *SQLiteStore) List(limit int) ([]Run, error) {
	return s.query(selectRuns+` ORDER BY seq DESC LIMIT ?`, sqlLimit(limit))
}

// ListAction implements Store.
func (s *SQLiteStore) ListAction(action string, limit int) ([]Run, error) {
	return s.query(selectRuns+` WHERE action = ? ORDER BY seq DESC LIMIT ?`, action, sqlLimit(limit))
}

func (s *SQLiteStore) query(q string, args ...any) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
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

// Clear implements Store.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run      Run
		started  string
		duration int64
	)
	err := row.Scan(&run.ID, &run.Action, &run.Source, &run.Template, &run.Command,
		&run.DryRun, &run.ExitCode, &started, &duration)
	if err != nil {
		return Run{}, err
	}
	run.Started, _ = time.Parse(time.RFC3339Nano, started)
	run.Duration = time.Duration(duration)
	return run, nil
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

package export

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "github.com/glebarez/go-sqlite"

	"github.com/tebeka/atexit"

	"github.com/inference-sim/pagesim/sim"
)

// openRecorders tracks recorders not yet closed, so one exit hook can close
// them all without keeping closed recorders alive.
var (
	openRecordersMu   sync.Mutex
	openRecorders     = map[*SQLiteRecorder]struct{}{}
	registerCloseHook sync.Once
)

func trackRecorder(r *SQLiteRecorder) {
	registerCloseHook.Do(func() { atexit.Register(closeOpenRecorders) })
	openRecordersMu.Lock()
	defer openRecordersMu.Unlock()
	openRecorders[r] = struct{}{}
}

func untrackRecorder(r *SQLiteRecorder) {
	openRecordersMu.Lock()
	defer openRecordersMu.Unlock()
	delete(openRecorders, r)
}

func openRecorderCount() int {
	openRecordersMu.Lock()
	defer openRecordersMu.Unlock()
	return len(openRecorders)
}

func closeOpenRecorders() {
	openRecordersMu.Lock()
	pending := make([]*SQLiteRecorder, 0, len(openRecorders))
	for r := range openRecorders {
		pending = append(pending, r)
	}
	openRecordersMu.Unlock()

	for _, r := range pending {
		_ = r.Close()
	}
}

// SQLiteRecorder writes results into a SQLite database with two tables:
// runs (one row per result) and steps (one row per trace step).
type SQLiteRecorder struct {
	*sql.DB

	path   string
	closed bool
}

// NewSQLiteRecorder creates a fresh database at path, replacing any existing
// file. The database is closed at exit if the caller has not closed it.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing old database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	r := &SQLiteRecorder{DB: db, path: path}
	if err := r.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}

	trackRecorder(r)

	return r, nil
}

func (r *SQLiteRecorder) createTables() error {
	stmts := []string{
		`CREATE TABLE runs (
			run_id     TEXT PRIMARY KEY,
			policy     TEXT NOT NULL,
			frames     INTEGER NOT NULL,
			refs       INTEGER NOT NULL,
			faults     INTEGER NOT NULL
		)`,
		`CREATE TABLE steps (
			run_id   TEXT NOT NULL REFERENCES runs(run_id),
			step     INTEGER NOT NULL,
			page     INTEGER NOT NULL,
			fault    INTEGER NOT NULL,
			evicted  INTEGER,
			frames   TEXT NOT NULL,
			PRIMARY KEY (run_id, step)
		)`,
	}
	for _, s := range stmts {
		if _, err := r.Exec(s); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// Record inserts res under runID, with all of its steps, in a single transaction.
func (r *SQLiteRecorder) Record(runID string, res *sim.Result) error {
	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, policy, frames, refs, faults) VALUES (?, ?, ?, ?, ?)`,
		runID, string(res.Policy), res.Frames, len(res.References), res.Faults,
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO steps (run_id, step, page, fault, evicted, frames) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing step insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, s := range res.Steps() {
		var evicted sql.NullInt64
		if s.Evicted != nil {
			evicted = sql.NullInt64{Int64: int64(*s.Evicted), Valid: true}
		}
		if _, err := stmt.Exec(runID, s.Index, s.Page, s.Fault, evicted, s.FramesString(" ")); err != nil {
			return fmt.Errorf("inserting step %d: %w", s.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Close closes the database. Calling Close more than once is a no-op.
func (r *SQLiteRecorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	untrackRecorder(r)
	return r.DB.Close()
}

// Package storage persists audit run summaries in a local sqlite database.
// Only summaries survive a run; flagged entries are never stored.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"timecop/internal/model"
)

// Run is one stored audit run summary.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	WindowHours float64   `json:"window_hours"`
	Scanned     int       `json:"scanned"`
	Fraud       int       `json:"fraud"`
	Potential   int       `json:"potential"`
	Clean       int       `json:"clean"`
}

// Store wraps the sqlite connection for run history.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the run-history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS audit_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		window_hours REAL NOT NULL,
		scanned INTEGER NOT NULL,
		fraud INTEGER NOT NULL,
		potential INTEGER NOT NULL,
		clean INTEGER NOT NULL
	)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks database reachability, for health checks.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// InsertRun records the summary of a completed audit run.
func (s *Store) InsertRun(id string, startedAt time.Time, report *model.AuditReport) error {
	_, err := s.db.Exec(
		`INSERT INTO audit_runs (id, started_at, window_hours, scanned, fraud, potential, clean) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		startedAt.UTC().Format("2006-01-02 15:04:05.000000"),
		report.WindowHours,
		report.TotalEntriesScanned,
		report.Summary.Fraud,
		report.Summary.Potential,
		report.Summary.Clean,
	)
	if err != nil {
		return fmt.Errorf("inserting audit run: %w", err)
	}
	return nil
}

// ListRuns returns stored runs, most recent first, with pagination.
func (s *Store) ListRuns(limit, offset int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, window_hours, scanned, fraud, potential, clean FROM audit_runs ORDER BY started_at DESC LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.WindowHours, &r.Scanned, &r.Fraud, &r.Potential, &r.Clean); err != nil {
			return nil, fmt.Errorf("scanning audit run: %w", err)
		}
		t, err := time.Parse("2006-01-02 15:04:05.000000", startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
		}
		r.StartedAt = t.UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

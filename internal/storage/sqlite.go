// Package storage provides SQLite-based persistence for puzzle results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
// It is safe for concurrent use; SSH sessions share one Store.
type Store struct {
	db *sql.DB
}

// ResultEntry is one finished puzzle session.
type ResultEntry struct {
	ID        int64
	RunID     string
	PuzzleID  string
	Success   bool
	Forfeited bool
	Message   string
	Duration  float64 // Elapsed seconds from start to finish
	CreatedAt time.Time
}

// PuzzleStats contains aggregated statistics for a puzzle.
type PuzzleStats struct {
	PuzzleID   string
	Played     int
	Won        int
	Forfeited  int
	BestTime   float64 // Fastest success, 0 if never won
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			puzzle_id TEXT NOT NULL,
			success INTEGER NOT NULL DEFAULT 0,
			forfeited INTEGER NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_puzzle_id ON results(puzzle_id);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r ResultEntry) (int64, error) {
	if r.RunID == "" || r.PuzzleID == "" {
		return 0, fmt.Errorf("storage: result needs a run id and a puzzle id")
	}

	res, err := s.db.Exec(
		`INSERT INTO results (run_id, puzzle_id, success, forfeited, message, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.PuzzleID, r.Success, r.Forfeited, r.Message, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ResultByRunID retrieves a result by its run id. Returns nil if absent.
func (s *Store) ResultByRunID(runID string) (*ResultEntry, error) {
	var e ResultEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, run_id, puzzle_id, success, forfeited, message, duration_secs, created_at
		 FROM results
		 WHERE run_id = ?`,
		runID,
	).Scan(&e.ID, &e.RunID, &e.PuzzleID, &e.Success, &e.Forfeited, &e.Message, &e.Duration, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// RecentResults retrieves the most recent results, newest first.
// An empty puzzleID returns results for every puzzle.
func (s *Store) RecentResults(puzzleID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, puzzle_id, success, forfeited, message, duration_secs, created_at
		 FROM results
		 WHERE ? = '' OR puzzle_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		puzzleID, puzzleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.PuzzleID, &e.Success, &e.Forfeited, &e.Message, &e.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated statistics for a specific puzzle.
func (s *Store) Stats(puzzleID string) (*PuzzleStats, error) {
	stats := &PuzzleStats{PuzzleID: puzzleID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(success), 0),
		        COALESCE(SUM(forfeited), 0),
		        COALESCE(MIN(CASE WHEN success = 1 THEN duration_secs END), 0),
		        MAX(created_at)
		 FROM results WHERE puzzle_id = ?`,
		puzzleID,
	).Scan(&stats.Played, &stats.Won, &stats.Forfeited, &stats.BestTime, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every puzzle that has been played.
func (s *Store) AllStats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id,
		        COUNT(*),
		        SUM(success),
		        SUM(forfeited),
		        COALESCE(MIN(CASE WHEN success = 1 THEN duration_secs END), 0),
		        MAX(created_at)
		 FROM results
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all puzzle stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PuzzleStats)
	for rows.Next() {
		var ps PuzzleStats
		var lastPlayed any
		if err := rows.Scan(&ps.PuzzleID, &ps.Played, &ps.Won, &ps.Forfeited, &ps.BestTime, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PuzzleID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes all results for the given puzzle.
func (s *Store) ClearResults(puzzleID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE puzzle_id = ?", puzzleID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

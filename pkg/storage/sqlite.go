// Package storage provides SQLite-based persistence for round history.
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

// timeLayout is how created_at is written; rows created by CURRENT_TIMESTAMP
// use the second-precision layout.
const (
	timeLayout       = "2006-01-02 15:04:05.000"
	legacyTimeLayout = "2006-01-02 15:04:05"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// RoundResult is one finished or abandoned round.
type RoundResult struct {
	ID        int64
	Level     string
	Shots     int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all rounds.
type Stats struct {
	Rounds int
	Wins   int
	Shots  int
}

// DefaultFileName is the history database file name on every platform.
const DefaultFileName = "history.db"

// DefaultPath returns the default desktop database location.
func DefaultPath() string {
	return filepath.Join("~", ".duckshot", DefaultFileName)
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT '',
			shots INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_best ON rounds(won, shots, duration_ms);
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

// SaveRound records a round. A zero CreatedAt is replaced with the current time.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundResult) (int64, error) {
	if r.Shots < 0 {
		return 0, fmt.Errorf("storage: invalid shot count %d", r.Shots)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	result, err := s.db.Exec(
		"INSERT INTO rounds (level, shots, won, duration_ms, created_at) VALUES (?, ?, ?, ?, ?)",
		r.Level, r.Shots, r.Won, r.Duration.Milliseconds(), r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, shots, won, duration_ms, created_at
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// BestRound returns the won round with the fewest shots (ties broken by
// duration, then by age). Returns nil if no round has been won.
func (s *Store) BestRound() (*RoundResult, error) {
	row := s.db.QueryRow(
		`SELECT id, level, shots, won, duration_ms, created_at
		 FROM rounds
		 WHERE won = 1
		 ORDER BY shots ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
	)

	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetStats retrieves aggregated statistics over all rounds.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(SUM(shots), 0) FROM rounds`,
	).Scan(&stats.Rounds, &stats.Wins, &stats.Shots)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return stats, nil
}

// ClearRounds deletes all round history.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRound(row rowScanner) (RoundResult, error) {
	var r RoundResult
	var durationMs int64
	var createdAt any

	if err := row.Scan(&r.ID, &r.Level, &r.Shots, &r.Won, &durationMs, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		for _, layout := range []string{timeLayout, legacyTimeLayout} {
			if parsed, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				r.CreatedAt = parsed
				break
			}
		}
	}
	return r, nil
}

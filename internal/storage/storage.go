// Package storage persists completed-run records in SQLite. Gameplay state
// stays in memory; only finished victories are written here, so wiping the
// database never affects a running session.
//
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Record is one completed run: the player reached the star requirement.
type Record struct {
	ID            int64
	Stars         int
	Coins         int
	BunniesCaught int
	PlaySeconds   int
	CreatedAt     time.Time
}

// Open creates or opens the database at path, creating parent directories
// and running migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stars INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			bunnies_caught INTEGER NOT NULL DEFAULT 0,
			play_seconds INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at DESC);
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

// SaveRecord inserts one completed run and returns its ID.
func (s *Store) SaveRecord(r Record) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO records (stars, coins, bunnies_caught, play_seconds)
		 VALUES (?, ?, ?, ?)`,
		r.Stars, r.Coins, r.BunniesCaught, r.PlaySeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Records retrieves the most recent runs, newest first.
func (s *Store) Records(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, stars, coins, bunnies_caught, play_seconds, created_at
		 FROM records
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Stars, &r.Coins, &r.BunniesCaught, &r.PlaySeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseCreatedAt(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestTime returns the fastest completed run in seconds, or 0 when no run
// has finished yet.
func (s *Store) BestTime() (int, error) {
	var secs sql.NullInt64
	err := s.db.QueryRow(`SELECT MIN(play_seconds) FROM records`).Scan(&secs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !secs.Valid {
		return 0, nil
	}
	return int(secs.Int64), nil
}

// parseCreatedAt handles both representations the driver may hand back.
func parseCreatedAt(v any) time.Time {
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

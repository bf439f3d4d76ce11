package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// RunRow is one finished run. Runs are logged, never resumed.
type RunRow struct {
	ID         string    `json:"id"`
	Outcome    string    `json:"outcome"`
	StartLevel int       `json:"start_level"`
	Cleared    int       `json:"cleared"`
	LevelCount int       `json:"level_count"`
	Kills      int       `json:"kills"`
	Lives      int       `json:"lives"`
	Duration   float64   `json:"duration"` // sim seconds
	CreatedAt  time.Time `json:"created_at"`
}

// RunSummary aggregates the run log
type RunSummary struct {
	Total int `json:"total"`
	Won   int `json:"won"`
	Lost  int `json:"lost"`
	Kills int `json:"kills"`
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		start_level INTEGER NOT NULL DEFAULT 0,
		cleared INTEGER NOT NULL DEFAULT 0,
		level_count INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		lives INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		run_id TEXT,
		data TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_analytics_type ON analytics_events(event_type, created_at);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// RecordRun stores the result of a finished run
func (db *DB) RecordRun(r RunRow) error {
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, outcome, start_level, cleared, level_count, kills, lives, duration)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Outcome, r.StartLevel, r.Cleared, r.LevelCount, r.Kills, r.Lives, r.Duration,
	)
	if err != nil {
		return fmt.Errorf("db: record run %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first
func (db *DB) RecentRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, outcome, start_level, cleared, level_count, kills, lives, duration, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Outcome, &r.StartLevel, &r.Cleared, &r.LevelCount,
			&r.Kills, &r.Lives, &r.Duration, &r.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetRun returns one run, or nil if it was never recorded
func (db *DB) GetRun(id string) (*RunRow, error) {
	row := db.conn.QueryRow(`
		SELECT id, outcome, start_level, cleared, level_count, kills, lives, duration, created_at
		FROM runs WHERE id = ?`, id)
	r := &RunRow{}
	err := row.Scan(&r.ID, &r.Outcome, &r.StartLevel, &r.Cleared, &r.LevelCount,
		&r.Kills, &r.Lives, &r.Duration, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// Summary counts wins and losses over the whole log
func (db *DB) Summary() (RunSummary, error) {
	var s RunSummary
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(kills), 0)
		FROM runs`).Scan(&s.Total, &s.Won, &s.Lost, &s.Kills)
	return s, err
}

// GetSetting returns a stored setting, or "" when absent
func (db *DB) GetSetting(key string) string {
	var v string
	if err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v); err != nil {
		return ""
	}
	return v
}

// SetSetting upserts a setting
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

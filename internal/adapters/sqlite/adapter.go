// Package sqlite provides a SQLite-backed implementation of the storage ports.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Adapter implements ports.Store for SQLite.
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	dsn := storagePath
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One connection: writes are serialised anyway and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		theme TEXT NOT NULL DEFAULT 'default',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS playlist_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		song_name TEXT NOT NULL,
		song_url TEXT NOT NULL,
		mood TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_playlist_entries_user_url ON playlist_entries(user_id, song_url);

	CREATE TABLE IF NOT EXISTS favorites (
		user_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		mood TEXT NOT NULL,
		added_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, position)
	);

	CREATE TABLE IF NOT EXISTS history (
		user_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		mood TEXT NOT NULL,
		played_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, position)
	);

	CREATE TABLE IF NOT EXISTS song_meta (
		url TEXT PRIMARY KEY,
		duration_sec REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := a.db.Exec(query)
	return err
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

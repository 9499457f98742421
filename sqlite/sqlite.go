// Package sqlite mirrors build artifacts into a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// WAL is ~7x faster for writes and allows concurrent reads during writes.
	// Trade-off: creates additional -wal and -shm files alongside the database.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			generated TEXT NOT NULL,
			base_url TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			heading TEXT NOT NULL DEFAULT '',
			heading_level INTEGER NOT NULL DEFAULT 0,
			content TEXT NOT NULL DEFAULT '',
			full_content TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			breadcrumb TEXT NOT NULL DEFAULT '[]',
			search_text TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS chunks (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			token_estimate INTEGER NOT NULL DEFAULT 0,
			chunk_index INTEGER,
			chunk_total INTEGER,
			section_range TEXT NOT NULL DEFAULT '',
			section_start INTEGER,
			section_end INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_records_category ON records(category);
		CREATE INDEX IF NOT EXISTS idx_records_version ON records(version);
	`

	_, err := db.db.Exec(schema)
	return err
}

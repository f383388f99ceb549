// Package sqlite implements the repository interfaces on an embedded
// SQLite database.
//
// The original system kept its three collections (users, chats, otp
// codes) in a flat JSON document file. SQLite gives us the same
// lookup-by-field, single-file, zero-server semantics with real
// concurrent-read behaviour. We use modernc.org/sqlite — a pure-Go
// translation of SQLite — so there is no CGo and cross-compilation
// stays trivial.
//
// Chat messages are stored as a JSON column inside the session row,
// keeping the document-store shape: a session is read and replaced as a
// whole, never patched message by message.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns the lifecycle: New opens and migrates,
// Close flushes and releases the file.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path surfaces here, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — this is a web
	// server, requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer this wherever New is called.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it
// idempotent — safe to run on every startup.
//
// username is COLLATE NOCASE so both the UNIQUE constraint and every
// equality comparison are case-insensitive without sprinkling LOWER()
// through the queries. (NOCASE is ASCII-only, which matches the
// username rules this API has always had.)
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL COLLATE NOCASE UNIQUE,
			full_name     TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			phone         TEXT NOT NULL DEFAULT '',
			gender        TEXT NOT NULL DEFAULT '',
			dob           TEXT NOT NULL DEFAULT '',
			address       TEXT NOT NULL DEFAULT '',
			district      TEXT NOT NULL DEFAULT '',
			state         TEXT NOT NULL DEFAULT '',
			country       TEXT NOT NULL DEFAULT '',
			pincode       TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// One session per (id, owner); messages ride along as JSON.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id        TEXT NOT NULL,
			username  TEXT NOT NULL,
			title     TEXT NOT NULL DEFAULT '',
			timestamp REAL NOT NULL DEFAULT 0,
			messages  TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (id, username)
		);
		CREATE INDEX IF NOT EXISTS idx_chats_username ON chats(username);
	`)
	if err != nil {
		return fmt.Errorf("creating chats table: %w", err)
	}

	// One active OTP per account; the username PK makes the upsert a
	// plain INSERT OR REPLACE.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS otp_codes (
			username  TEXT PRIMARY KEY,
			code      TEXT NOT NULL,
			issued_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating otp_codes table: %w", err)
	}

	return nil
}

// Package sqlite implements the repository interfaces on SQLite.
//
// The data is document-shaped: a profile's skills, socials, experience,
// and education — and a post's likes and comments — are ordered nested
// collections with no lifecycle of their own. Rather than normalizing
// them into join tables, we persist each sub-collection as a JSON TEXT
// column and rewrite it wholesale on update. That keeps every mutation
// a single-row read-modify-write, which is exactly the concurrency
// contract the API promises (last write wins per document).
//
// modernc.org/sqlite is a pure-Go driver, so the binary cross-compiles
// without a C toolchain.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DB wraps the connection pool. The per-entity stores (Users, Profiles,
// Posts) share it; the server owns it and closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// Users returns the user store backed by this database.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Profiles returns the profile store backed by this database.
func (db *DB) Profiles() *ProfileStore { return &ProfileStore{db: db} }

// Posts returns the post store backed by this database.
func (db *DB) Posts() *PostStore { return &PostStore{db: db} }

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection only: SQLite serializes writes anyway, and the
	// PRAGMAs below are per-connection. With ":memory:" every pooled
	// connection would otherwise get its own empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — important
	// for a web server sharing one database file across requests.
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

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent across restarts.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			avatar     TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// One profile per user: user_id is UNIQUE and cascades with the
	// owning account.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			designation     TEXT NOT NULL,
			company         TEXT NOT NULL DEFAULT '',
			website         TEXT NOT NULL DEFAULT '',
			location        TEXT NOT NULL DEFAULT '',
			bio             TEXT NOT NULL DEFAULT '',
			github_username TEXT NOT NULL DEFAULT '',
			skills          TEXT NOT NULL DEFAULT '[]',
			socials         TEXT NOT NULL DEFAULT '{}',
			experience      TEXT NOT NULL DEFAULT '[]',
			education       TEXT NOT NULL DEFAULT '[]',
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	// Posts keep an author snapshot (name, avatar) and are NOT cascaded
	// when the user row goes away — post cleanup on account deletion is
	// deliberately left to the caller, matching the API contract.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			avatar     TEXT NOT NULL DEFAULT '',
			text       TEXT NOT NULL,
			likes      TEXT NOT NULL DEFAULT '[]',
			comments   TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
		CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating posts table: %w", err)
	}

	return nil
}

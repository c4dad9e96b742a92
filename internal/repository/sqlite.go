package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	full_name  TEXT NOT NULL,
	subject    TEXT NOT NULL,
	message    TEXT NOT NULL,
	ip_hash    TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contact_messages_email ON contact_messages (email);

CREATE TABLE IF NOT EXISTS email_subscriptions (
	id                TEXT PRIMARY KEY,
	email             TEXT NOT NULL UNIQUE,
	full_name         TEXT,
	role              TEXT CHECK (role IN ('client', 'therapist', 'partner')),
	ip_hash           TEXT,
	consent_given     INTEGER NOT NULL DEFAULT 0,
	consent_timestamp TIMESTAMP,
	created_at        TIMESTAMP NOT NULL
);
`

// OpenSQLite opens the SQLite database at dsn and applies the lead schema.
// The pool is limited to one connection: SQLite has a single writer, and an
// in-memory database exists only per connection.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot apply schema: %w", err)
	}
	return db, nil
}

type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// NewSQLiteStore returns a Store backed by db. Close closes db.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Contacts:      NewSQLiteContactRepository(db),
		Subscriptions: NewSQLiteSubscriptionRepository(db),
		db:            sqlPinger{db: db},
		close:         db.Close,
	}
}

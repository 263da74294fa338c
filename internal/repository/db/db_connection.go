package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens or creates the SQLite file at path and ensures the schema
// exists. ":memory:" gives a throwaway database.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA busy_timeout = 5000;",
}

const schemaViewPrefs = `
CREATE TABLE IF NOT EXISTS view_prefs (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    page INTEGER NOT NULL DEFAULT 1,
    page_size INTEGER NOT NULL DEFAULT 10,
    sort_key TEXT NOT NULL DEFAULT 'timestamp_nanos',
    sort_dir TEXT NOT NULL DEFAULT 'desc',
    view_mode TEXT NOT NULL DEFAULT 'full',
    updated_at TIMESTAMP NOT NULL
);
`

// occurred_at holds "YYYY-MM-DD HH:MM:SS" UTC text so range filters compare lexically.
const schemaActivityEvents = `
CREATE TABLE IF NOT EXISTS activity_events (
    id TEXT PRIMARY KEY,
    occurred_at TEXT NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const indexActivityOccurredAt = `
CREATE INDEX IF NOT EXISTS idx_activity_events_occurred_at ON activity_events (occurred_at);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaViewPrefs,
		schemaActivityEvents,
		indexActivityOccurredAt,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

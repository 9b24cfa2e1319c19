// Package store archives analysis runs in a local SQLite database.
//
// The archive lets `history` compare week over week and lets the serve
// command expose past runs without re-analyzing. The driver is pure Go, so
// the binary stays a single static artifact.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	source_dir   TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	finished_at  TIMESTAMP NOT NULL,
	total_posts  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_results (
	run_id     TEXT NOT NULL,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	rating     REAL NOT NULL,
	raw_score  REAL NOT NULL,
	post_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at);
`

// Store is a SQLite-backed run archive. Implements domain.RunStore.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the archive at path and applies the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	// _time_format=sqlite stores timestamps in the canonical sqlite text
	// layout, keeping ORDER BY and range comparisons on started_at sound.
	db, err := sql.Open("sqlite", "file:"+path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// modernc sqlite allows a single writer at a time
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping checks database connectivity, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

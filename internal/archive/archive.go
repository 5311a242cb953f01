// Package archive keeps the scrape history in SQLite: one row per run
// and one content hash per page for change detection across snapshots.
// The NDJSON files remain the archive of record; this store only makes
// "what changed when" queries cheap.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/teletextarchive/ttx/internal/report"
)

// DB is the run-history store.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the history database under dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	path := filepath.Join(dir, "history.db")

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite supports one writer; a second connection would only block.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &DB{db: db, path: path}
	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *DB) Close() error {
	return a.db.Close()
}

// createTables creates the schema if it does not exist.
func (a *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		station TEXT NOT NULL,
		captured_at DATETIME NOT NULL,
		added INTEGER NOT NULL,
		changed INTEGER NOT NULL,
		unchanged INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		errors INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_station ON runs(station);
	CREATE INDEX IF NOT EXISTS idx_runs_captured ON runs(captured_at);

	CREATE TABLE IF NOT EXISTS page_hashes (
		station TEXT NOT NULL,
		page INTEGER NOT NULL,
		sub_page INTEGER NOT NULL,
		hash TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (station, page, sub_page)
	);
	`
	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// RecordRun stores one run summary.
func (a *DB) RecordRun(ctx context.Context, run report.Run) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO runs (station, captured_at, added, changed, unchanged, removed, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Station, run.Timestamp.UTC(), run.Added, run.Changed, run.Unchanged, run.Removed, run.Errors,
	)
	if err != nil {
		return fmt.Errorf("record run for %s: %w", run.Station, err)
	}
	return nil
}

// Runs returns the most recent run summaries, newest first. An empty
// station selects all stations.
func (a *DB) Runs(ctx context.Context, station string, limit int) ([]report.Run, error) {
	query := `SELECT station, captured_at, added, changed, unchanged, removed, errors
		  FROM runs`
	args := []any{}
	if station != "" {
		query += ` WHERE station = ?`
		args = append(args, station)
	}
	query += ` ORDER BY captured_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var runs []report.Run
	for rows.Next() {
		var run report.Run
		if err := rows.Scan(&run.Station, &run.Timestamp, &run.Added, &run.Changed,
			&run.Unchanged, &run.Removed, &run.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// UpdatePageHash upserts a page's content hash and reports whether the
// content changed since the stored hash. A page seen for the first time
// counts as changed.
func (a *DB) UpdatePageHash(ctx context.Context, station string, page, subPage int, hash string, at time.Time) (bool, error) {
	var prev string
	err := a.db.QueryRowContext(ctx,
		`SELECT hash FROM page_hashes WHERE station = ? AND page = ? AND sub_page = ?`,
		station, page, subPage,
	).Scan(&prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First sighting, fall through to the insert.
	case err != nil:
		return false, fmt.Errorf("query page hash: %w", err)
	case prev == hash:
		return false, nil
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO page_hashes (station, page, sub_page, hash, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (station, page, sub_page) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at`,
		station, page, subPage, hash, at.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("update page hash: %w", err)
	}
	return true, nil
}

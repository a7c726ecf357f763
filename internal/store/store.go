// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store caches fetched passage pages in a local SQLite
// database so repeated requests for the same passage do not hammer the
// source site.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "pages.db"

// Cache is a (passage, edition) keyed page cache.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database under dir and bootstraps
// the schema. ttl controls how long cached pages stay fresh; zero or
// negative disables reuse (pages are still written, so raising the TTL
// later revives them).
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, ttl: ttl}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		passage    TEXT NOT NULL,
		edition    TEXT NOT NULL,
		body       BLOB NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (passage, edition)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the cached page body for (passage, edition) when one
// exists and is younger than the TTL. The second return value reports a
// usable hit.
func (c *Cache) Get(ctx context.Context, passage, edition string) ([]byte, bool, error) {
	if c.ttl <= 0 {
		return nil, false, nil
	}

	var body []byte
	var fetchedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM pages WHERE passage = ? AND edition = ?`,
		passage, edition,
	).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying page cache: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil || time.Since(t) > c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores (or refreshes) the page body for (passage, edition).
func (c *Cache) Put(ctx context.Context, passage, edition string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO pages (passage, edition, body, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(passage, edition) DO UPDATE SET
			body=excluded.body, fetched_at=excluded.fetched_at`,
		passage, edition, body, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing page cache: %w", err)
	}
	return nil
}

// Purge drops every cached page older than the TTL, or everything when
// the TTL is zero or negative. It backs the cache purge subcommand.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		res, err := c.db.ExecContext(ctx, `DELETE FROM pages`)
		if err != nil {
			return 0, fmt.Errorf("purging page cache: %w", err)
		}
		return res.RowsAffected()
	}
	cutoff := time.Now().UTC().Add(-c.ttl).Format(time.RFC3339Nano)
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging page cache: %w", err)
	}
	return res.RowsAffected()
}

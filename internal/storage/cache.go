// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage caches the most recent record snapshot per owner in a
// local SQLite database, so the dashboard can render immediately on startup
// and read-only while offline. The cache is never a source of truth: every
// live push overwrites it wholesale.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/morganforge/chitter-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoSnapshot    = errors.New("no cached snapshot for owner")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SNAPSHOT CACHE
// =============================================================================

// Cache is the local snapshot replica. Safe for use from multiple
// goroutines; SQLite serializes writers via the single-connection pool.
type Cache struct {
	db         *sql.DB
	path       string
	maxRecords int
}

// DefaultMaxRecords caps how many records one owner's snapshot may keep.
const DefaultMaxRecords = 500

// Open opens (or creates) the cache database at path.
func Open(path string, maxRecords int) (*Cache, error) {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Cache{db: db, path: path, maxRecords: maxRecords}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Replace overwrites the owner's cached snapshot with a new one. The whole
// replacement runs in one transaction so a crash never leaves a half-mixed
// snapshot.
func (c *Cache) Replace(ctx context.Context, ownerID string, records []model.ChatRecord) error {
	if len(records) > c.maxRecords {
		records = records[:c.maxRecords]
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	for i := range records {
		data, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", records[i].ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshots (owner_id, position, chat_id, data)
			VALUES (?, ?, ?, ?)
		`, ownerID, i, records[i].ID, string(data))
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_meta (owner_id, synced_at) VALUES (?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET synced_at = excluded.synced_at
	`, ownerID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to update sync metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load returns the owner's cached snapshot in push order. ErrNoSnapshot
// when the owner has never synced.
func (c *Cache) Load(ctx context.Context, ownerID string) ([]model.ChatRecord, error) {
	var synced int64
	err := c.db.QueryRowContext(ctx,
		"SELECT synced_at FROM sync_meta WHERE owner_id = ?", ownerID).Scan(&synced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT data FROM snapshots WHERE owner_id = ? ORDER BY position
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []model.ChatRecord{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		var rec model.ChatRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			// A corrupt row loses one record, not the whole snapshot.
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// SyncedAt returns when the owner's snapshot was last replaced.
func (c *Cache) SyncedAt(ctx context.Context, ownerID string) (time.Time, error) {
	var synced int64
	err := c.db.QueryRowContext(ctx,
		"SELECT synced_at FROM sync_meta WHERE owner_id = ?", ownerID).Scan(&synced)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return time.Unix(synced, 0), nil
}

// Clear drops the owner's snapshot, for sign-out.
func (c *Cache) Clear(ctx context.Context, ownerID string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM snapshots WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM sync_meta WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

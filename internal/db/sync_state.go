package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/marcus/nsisync/internal/models"
)

// GetSyncCursor returns the latest cursor row. A fresh or reset database
// yields version 0, which makes the next run fetch everything.
func (db *DB) GetSyncCursor() (models.SyncCursor, error) {
	var cur models.SyncCursor
	var syncedAt string

	err := db.conn.QueryRow(`
		SELECT version, items_synced, synced_at
		FROM sync_state ORDER BY seq DESC LIMIT 1
	`).Scan(&cur.Version, &cur.ItemsSynced, &syncedAt)
	if err == sql.ErrNoRows {
		return models.SyncCursor{}, nil
	}
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("get sync cursor: %w", err)
	}

	if t, perr := parseTimestamp(syncedAt); perr == nil {
		cur.SyncedAt = t
	}
	return cur, nil
}

// AppendSyncCursor records a completed run. Written exactly once per run,
// after all item processing finished.
func (db *DB) AppendSyncCursor(version int64, itemsSynced int) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO sync_state (version, items_synced) VALUES (?, ?)
		`, version, itemsSynced)
		if err != nil {
			return fmt.Errorf("append sync cursor: %w", err)
		}
		return nil
	})
}

// ResetSyncCursor appends a version-0 row so the next run performs a full
// re-fetch. History is kept; the cursor read only looks at the latest row.
func (db *DB) ResetSyncCursor() error {
	return db.AppendSyncCursor(0, 0)
}

// GetSyncHistory returns the most recent cursor rows, newest first.
func (db *DB) GetSyncHistory(limit int) ([]models.SyncCursor, error) {
	rows, err := db.conn.Query(`
		SELECT version, items_synced, synced_at
		FROM sync_state ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get sync history: %w", err)
	}
	defer rows.Close()

	var history []models.SyncCursor
	for rows.Next() {
		var cur models.SyncCursor
		var syncedAt string
		if err := rows.Scan(&cur.Version, &cur.ItemsSynced, &syncedAt); err != nil {
			return nil, fmt.Errorf("scan sync history: %w", err)
		}
		if t, perr := parseTimestamp(syncedAt); perr == nil {
			cur.SyncedAt = t
		}
		history = append(history, cur)
	}
	return history, rows.Err()
}

// parseTimestamp tries the SQLite timestamp formats CURRENT_TIMESTAMP produces.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

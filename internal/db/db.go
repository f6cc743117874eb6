package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const dbFile = ".nsisync/nsi.db"

// DB wraps the portal reference database.
type DB struct {
	conn    *sql.DB
	baseDir string
	locker  *writeLocker
}

// Open opens an existing database.
func Open(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: run 'nsisync init' first")
	}

	conn, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	return &DB{conn: conn, baseDir: baseDir, locker: newWriteLocker(baseDir)}, nil
}

// Initialize creates the database directory, the database, and the schema.
// Safe to call on an existing database.
func Initialize(baseDir string) (*DB, error) {
	dbPath := filepath.Join(baseDir, dbFile)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{conn: conn, baseDir: baseDir, locker: newWriteLocker(baseDir)}, nil
}

func open(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL allows concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Busy timeout as fallback protection (matches lock timeout)
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	return conn, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying *sql.DB for callers that need transactions.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// withWriteLock runs fn while holding the exclusive cross-process write lock.
func (db *DB) withWriteLock(fn func() error) error {
	if err := db.locker.acquire(defaultTimeout); err != nil {
		return err
	}
	defer db.locker.release()
	return fn()
}

// marshalData serializes an attribute bag for the data column.
// Nil maps become NULL so empty bags stay distinguishable from "{}".
func marshalData(data map[string]any) (any, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal data bag: %w", err)
	}
	return string(raw), nil
}

// unmarshalData restores an attribute bag from the data column.
func unmarshalData(raw sql.NullString) (map[string]any, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw.String), &data); err != nil {
		return nil, fmt.Errorf("unmarshal data bag: %w", err)
	}
	return data, nil
}

package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertCounterparty inserts or updates a counterparty keyed by id.
func (db *DB) UpsertCounterparty(cp models.Counterparty) error {
	data, err := marshalData(cp.Data)
	if err != nil {
		return fmt.Errorf("upsert counterparty %s: %w", cp.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO counterparties (id, name, inn, data)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				inn = excluded.inn,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, cp.ID, cp.Name, cp.INN, data)
		if err != nil {
			return fmt.Errorf("upsert counterparty %s: %w", cp.ID, err)
		}
		return nil
	})
}

// GetCounterpartyByID returns the counterparty, or nil if it does not exist.
func (db *DB) GetCounterpartyByID(id string) (*models.Counterparty, error) {
	var cp models.Counterparty
	var inn, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, name, inn, data FROM counterparties WHERE id = ?`, id,
	).Scan(&cp.ID, &cp.Name, &inn, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get counterparty %s: %w", id, err)
	}

	cp.INN = inn.String
	if cp.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get counterparty %s: %w", id, err)
	}
	return &cp, nil
}

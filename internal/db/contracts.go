package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertContract inserts or updates a contract keyed by id.
func (db *DB) UpsertContract(c models.Contract) error {
	data, err := marshalData(c.Data)
	if err != nil {
		return fmt.Errorf("upsert contract %s: %w", c.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO contracts (id, name, organization_id, counterparty_id, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				organization_id = excluded.organization_id,
				counterparty_id = excluded.counterparty_id,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, c.ID, c.Name, c.OrganizationID, c.CounterpartyID, data)
		if err != nil {
			return fmt.Errorf("upsert contract %s: %w", c.ID, err)
		}
		return nil
	})
}

// GetContractByID returns the contract, or nil if it does not exist.
func (db *DB) GetContractByID(id string) (*models.Contract, error) {
	var c models.Contract
	var orgID, cpID, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, name, organization_id, counterparty_id, data FROM contracts WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &orgID, &cpID, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contract %s: %w", id, err)
	}

	c.OrganizationID = orgID.String
	c.CounterpartyID = cpID.String
	if c.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get contract %s: %w", id, err)
	}
	return &c, nil
}

package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertWarehouse inserts or updates a warehouse keyed by id.
func (db *DB) UpsertWarehouse(w models.Warehouse) error {
	data, err := marshalData(w.Data)
	if err != nil {
		return fmt.Errorf("upsert warehouse %s: %w", w.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO warehouses (id, code, name, organization_id, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				code = excluded.code,
				name = excluded.name,
				organization_id = excluded.organization_id,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, w.ID, w.Code, w.Name, w.OrganizationID, data)
		if err != nil {
			return fmt.Errorf("upsert warehouse %s: %w", w.ID, err)
		}
		return nil
	})
}

// GetWarehouseByID returns the warehouse, or nil if it does not exist.
func (db *DB) GetWarehouseByID(id string) (*models.Warehouse, error) {
	var w models.Warehouse
	var code, orgID, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, code, name, organization_id, data FROM warehouses WHERE id = ?`, id,
	).Scan(&w.ID, &code, &w.Name, &orgID, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get warehouse %s: %w", id, err)
	}

	w.Code = code.String
	w.OrganizationID = orgID.String
	if w.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get warehouse %s: %w", id, err)
	}
	return &w, nil
}

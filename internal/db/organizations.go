package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertOrganization inserts or updates an organization keyed by id.
// A later real record overwrites any stub previously created under the same
// id, including its placeholder code.
func (db *DB) UpsertOrganization(org models.Organization) error {
	data, err := marshalData(org.Data)
	if err != nil {
		return fmt.Errorf("upsert organization %s: %w", org.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO organizations (id, code, name, inn, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				code = excluded.code,
				name = excluded.name,
				inn = excluded.inn,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, org.ID, org.Code, org.Name, org.INN, data)
		if err != nil {
			return fmt.Errorf("upsert organization %s: %w", org.ID, err)
		}
		return nil
	})
}

// UpdateOrganizationByCode refreshes the row matching code, keeping its local
// id. Used when upstream delivers an organization whose id differs from a
// locally seeded one but whose code matches.
func (db *DB) UpdateOrganizationByCode(code string, org models.Organization) error {
	data, err := marshalData(org.Data)
	if err != nil {
		return fmt.Errorf("update organization code=%s: %w", code, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			UPDATE organizations
			SET name = ?, inn = ?, data = ?, updated_at = CURRENT_TIMESTAMP
			WHERE code = ?
		`, org.Name, org.INN, data, code)
		if err != nil {
			return fmt.Errorf("update organization code=%s: %w", code, err)
		}
		return nil
	})
}

// GetOrganizationByID returns the organization, or nil if it does not exist.
func (db *DB) GetOrganizationByID(id string) (*models.Organization, error) {
	return db.getOrganization("id", id)
}

// GetOrganizationByCode returns the organization, or nil if it does not exist.
func (db *DB) GetOrganizationByCode(code string) (*models.Organization, error) {
	return db.getOrganization("code", code)
}

func (db *DB) getOrganization(column, value string) (*models.Organization, error) {
	var org models.Organization
	var inn, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, code, name, inn, data FROM organizations WHERE `+column+` = ?`, value,
	).Scan(&org.ID, &org.Code, &org.Name, &inn, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get organization %s=%s: %w", column, value, err)
	}

	org.INN = inn.String
	if org.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get organization %s=%s: %w", column, value, err)
	}
	return &org, nil
}

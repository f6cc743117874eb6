package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertAccount inserts or updates a bank/cash account keyed by id.
func (db *DB) UpsertAccount(a models.Account) error {
	data, err := marshalData(a.Data)
	if err != nil {
		return fmt.Errorf("upsert account %s: %w", a.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO accounts (id, code, name, organization_id, type, data)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				code = excluded.code,
				name = excluded.name,
				organization_id = excluded.organization_id,
				type = excluded.type,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, a.ID, a.Code, a.Name, a.OrganizationID, a.Type, data)
		if err != nil {
			return fmt.Errorf("upsert account %s: %w", a.ID, err)
		}
		return nil
	})
}

// GetAccountByID returns the account, or nil if it does not exist.
func (db *DB) GetAccountByID(id string) (*models.Account, error) {
	var a models.Account
	var code, orgID, typ, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, code, name, organization_id, type, data FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &code, &a.Name, &orgID, &typ, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}

	a.Code = code.String
	a.OrganizationID = orgID.String
	a.Type = typ.String
	if a.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}
	return &a, nil
}

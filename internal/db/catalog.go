package db

import (
	"database/sql"
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// UpsertNomenclature inserts or updates a nomenclature entry keyed by id.
func (db *DB) UpsertNomenclature(n models.Nomenclature) error {
	data, err := marshalData(n.Data)
	if err != nil {
		return fmt.Errorf("upsert nomenclature %s: %w", n.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO nomenclature (id, code, name, data)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				code = excluded.code,
				name = excluded.name,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, n.ID, n.Code, n.Name, data)
		if err != nil {
			return fmt.Errorf("upsert nomenclature %s: %w", n.ID, err)
		}
		return nil
	})
}

// GetNomenclatureByID returns the nomenclature entry, or nil if it does not exist.
func (db *DB) GetNomenclatureByID(id string) (*models.Nomenclature, error) {
	var n models.Nomenclature
	var code, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, code, name, data FROM nomenclature WHERE id = ?`, id,
	).Scan(&n.ID, &code, &n.Name, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get nomenclature %s: %w", id, err)
	}

	n.Code = code.String
	if n.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get nomenclature %s: %w", id, err)
	}
	return &n, nil
}

// UpsertAccountingAccount inserts or updates a chart-of-accounts entry keyed by id.
func (db *DB) UpsertAccountingAccount(a models.AccountingAccount) error {
	data, err := marshalData(a.Data)
	if err != nil {
		return fmt.Errorf("upsert accounting account %s: %w", a.ID, err)
	}
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO accounting_accounts (id, code, name, data)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				code = excluded.code,
				name = excluded.name,
				data = excluded.data,
				updated_at = CURRENT_TIMESTAMP
		`, a.ID, a.Code, a.Name, data)
		if err != nil {
			return fmt.Errorf("upsert accounting account %s: %w", a.ID, err)
		}
		return nil
	})
}

// GetAccountingAccountByID returns the chart-of-accounts entry, or nil if it does not exist.
func (db *DB) GetAccountingAccountByID(id string) (*models.AccountingAccount, error) {
	var a models.AccountingAccount
	var code, data sql.NullString

	err := db.conn.QueryRow(
		`SELECT id, code, name, data FROM accounting_accounts WHERE id = ?`, id,
	).Scan(&a.ID, &code, &a.Name, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get accounting account %s: %w", id, err)
	}

	a.Code = code.String
	if a.Data, err = unmarshalData(data); err != nil {
		return nil, fmt.Errorf("get accounting account %s: %w", id, err)
	}
	return &a, nil
}

package db

import (
	"fmt"

	"github.com/google/uuid"
)

// seedCodePrefix namespaces bootstrap warehouses so ClearSeededWarehouses
// removes only what SeedWarehouses created.
const seedCodePrefix = "SEED-"

// seedNames are the conventional warehouses created per organization.
var seedNames = [3]string{"Main warehouse", "Materials warehouse", "Finished goods warehouse"}

// nsiTables are the reference tables cleared by both reset variants, in an
// order that never leaves a dangling foreign key mid-transaction.
var nsiTables = []string{
	"contracts", "warehouses", "accounts",
	"counterparties", "nomenclature", "accounting_accounts",
}

// portalTables are additionally truncated by the portal-wide reset.
var portalTables = []string{"export_queue", "documents", "document_packages"}

// ClearNSIData deletes all reference data except organizations still
// referenced by users, documents, or packages, then resets the cursor so the
// next run re-fetches everything. Returns rows deleted and organizations
// preserved.
func (db *DB) ClearNSIData() (deleted, preserved int64, err error) {
	err = db.withWriteLock(func() error {
		var inner error
		deleted, preserved, inner = db.clearReferenceData(false)
		return inner
	})
	return deleted, preserved, err
}

// ClearPortalData deletes reference data plus documents, packages, and the
// export queue, preserving only organizations referenced by users.
func (db *DB) ClearPortalData() (deleted, preserved int64, err error) {
	err = db.withWriteLock(func() error {
		var inner error
		deleted, preserved, inner = db.clearReferenceData(true)
		return inner
	})
	return deleted, preserved, err
}

func (db *DB) clearReferenceData(portalWide bool) (int64, int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	var deleted int64

	if portalWide {
		for _, table := range portalTables {
			res, err := tx.Exec(`DELETE FROM ` + table)
			if err != nil {
				return 0, 0, fmt.Errorf("clear %s: %w", table, err)
			}
			n, _ := res.RowsAffected()
			deleted += n
		}
	}

	for _, table := range nsiTables {
		res, err := tx.Exec(`DELETE FROM ` + table)
		if err != nil {
			return 0, 0, fmt.Errorf("clear %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		deleted += n
	}

	// The NSI-only variant keeps documents and packages, so their
	// organization references must keep resolving.
	orgFilter := `
		DELETE FROM organizations WHERE id NOT IN (
			SELECT organization_id FROM users WHERE organization_id != ''
		)`
	if !portalWide {
		orgFilter += ` AND id NOT IN (
			SELECT organization_id FROM documents WHERE organization_id != ''
		) AND id NOT IN (
			SELECT organization_id FROM document_packages WHERE organization_id != ''
		)`
	}
	res, err := tx.Exec(orgFilter)
	if err != nil {
		return 0, 0, fmt.Errorf("clear organizations: %w", err)
	}
	n, _ := res.RowsAffected()
	deleted += n

	var preserved int64
	if err := tx.QueryRow(`SELECT COUNT(*) FROM organizations`).Scan(&preserved); err != nil {
		return 0, 0, fmt.Errorf("count preserved organizations: %w", err)
	}

	// Reset cursor inside the same transaction so a failed clear cannot
	// leave old data paired with a zeroed cursor.
	if _, err := tx.Exec(`INSERT INTO sync_state (version, items_synced) VALUES (0, 0)`); err != nil {
		return 0, 0, fmt.Errorf("reset sync cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit clear: %w", err)
	}
	return deleted, preserved, nil
}

// SeedWarehouses creates the three conventional warehouses for every
// organization that has none. Idempotent: organizations that already own a
// warehouse (seeded or real) are skipped.
func (db *DB) SeedWarehouses() (int, error) {
	created := 0
	err := db.withWriteLock(func() error {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin seed: %w", err)
		}
		defer tx.Rollback()

		rows, err := tx.Query(`
			SELECT o.id, o.code FROM organizations o
			WHERE NOT EXISTS (SELECT 1 FROM warehouses w WHERE w.organization_id = o.id)
		`)
		if err != nil {
			return fmt.Errorf("find bare organizations: %w", err)
		}

		type bareOrg struct{ id, code string }
		var bare []bareOrg
		for rows.Next() {
			var o bareOrg
			if err := rows.Scan(&o.id, &o.code); err != nil {
				rows.Close()
				return fmt.Errorf("scan organization: %w", err)
			}
			bare = append(bare, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate organizations: %w", err)
		}

		for _, org := range bare {
			for i, name := range seedNames {
				_, err := tx.Exec(`
					INSERT INTO warehouses (id, code, name, organization_id)
					VALUES (?, ?, ?, ?)
				`, "wh-"+uuid.NewString(),
					fmt.Sprintf("%s%s-%d", seedCodePrefix, org.code, i+1),
					name, org.id)
				if err != nil {
					return fmt.Errorf("seed warehouse for %s: %w", org.id, err)
				}
				created++
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// ClearSeededWarehouses removes only warehouses created by SeedWarehouses.
func (db *DB) ClearSeededWarehouses() (int64, error) {
	var deleted int64
	err := db.withWriteLock(func() error {
		res, err := db.conn.Exec(
			`DELETE FROM warehouses WHERE code LIKE ?`, seedCodePrefix+"%",
		)
		if err != nil {
			return fmt.Errorf("clear seeded warehouses: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

// TableCounts returns row counts for every reference table, for status output.
func (db *DB) TableCounts() (map[string]int64, error) {
	counts := make(map[string]int64)
	tables := append([]string{"organizations"}, nsiTables...)
	for _, table := range tables {
		var n int64
		if err := db.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

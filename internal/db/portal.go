package db

import (
	"fmt"
)

// Portal-side write helpers. The sync engine never calls these; they exist
// for the document layer sitting on top of this store and for maintenance
// tests that need referenced organizations.

// CreateUser inserts a portal user.
func (db *DB) CreateUser(id, name, organizationID string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO users (id, name, organization_id) VALUES (?, ?, ?)
		`, id, name, organizationID)
		if err != nil {
			return fmt.Errorf("create user %s: %w", id, err)
		}
		return nil
	})
}

// CreateDocument inserts an accounting document.
func (db *DB) CreateDocument(id, number, organizationID, counterpartyID string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO documents (id, number, organization_id, counterparty_id)
			VALUES (?, ?, ?, ?)
		`, id, number, organizationID, counterpartyID)
		if err != nil {
			return fmt.Errorf("create document %s: %w", id, err)
		}
		return nil
	})
}

// CreateDocumentPackage inserts a document package.
func (db *DB) CreateDocumentPackage(id, name, organizationID string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO document_packages (id, name, organization_id) VALUES (?, ?, ?)
		`, id, name, organizationID)
		if err != nil {
			return fmt.Errorf("create document package %s: %w", id, err)
		}
		return nil
	})
}

// EnqueueExport adds a document to the UH export queue.
func (db *DB) EnqueueExport(documentID string) error {
	return db.withWriteLock(func() error {
		_, err := db.conn.Exec(`
			INSERT INTO export_queue (document_id) VALUES (?)
		`, documentID)
		if err != nil {
			return fmt.Errorf("enqueue export %s: %w", documentID, err)
		}
		return nil
	})
}

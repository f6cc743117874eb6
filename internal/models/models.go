package models

import (
	"time"
)

// EntityType identifies a kind of NSI reference item.
type EntityType string

const (
	EntityOrganization      EntityType = "Organization"
	EntityCounterparty      EntityType = "Counterparty"
	EntityContract          EntityType = "Contract"
	EntityWarehouse         EntityType = "Warehouse"
	EntityNomenclature      EntityType = "Nomenclature"
	EntityAccount           EntityType = "Account"
	EntityAccountingAccount EntityType = "AccountingAccount"
)

// ErrTypeSystem marks a run-level error in SyncResult.Errors (feed
// unreachable or malformed), as opposed to a per-item reconcile failure.
const ErrTypeSystem = "System"

// DeltaItem is one changed reference item from the upstream feed.
// Code and Name may be empty; Data carries the raw attribute bag and is the
// fallback source for typed fields during reconciliation.
type DeltaItem struct {
	Type EntityType     `json:"type"`
	ID   string         `json:"id"`
	Code string         `json:"code,omitempty"`
	Name string         `json:"name,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Delta is one batch of changed reference items from the general feed,
// together with the cursor to persist once the batch is applied.
type Delta struct {
	Version int64       `json:"version"`
	Items   []DeltaItem `json:"items"`
}

// SyncCursor is the last successfully applied feed position.
type SyncCursor struct {
	Version     int64     `json:"version"`
	ItemsSynced int       `json:"items_synced"`
	SyncedAt    time.Time `json:"synced_at"`
}

// Organization is a legal entity of the holding. Code is the natural
// secondary key: upstream ids may differ from locally seeded ones.
type Organization struct {
	ID   string         `json:"id"`
	Code string         `json:"code"`
	Name string         `json:"name"`
	INN  string         `json:"inn,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Counterparty is an external party (supplier, customer).
type Counterparty struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	INN  string         `json:"inn,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Contract links an organization with a counterparty.
type Contract struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	OrganizationID string         `json:"organization_id,omitempty"`
	CounterpartyID string         `json:"counterparty_id,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

// Warehouse is a storage location belonging to an organization.
type Warehouse struct {
	ID             string         `json:"id"`
	Code           string         `json:"code,omitempty"`
	Name           string         `json:"name"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

// Nomenclature is a goods/services catalog entry.
type Nomenclature struct {
	ID   string         `json:"id"`
	Code string         `json:"code,omitempty"`
	Name string         `json:"name"`
	Data map[string]any `json:"data,omitempty"`
}

// Account is a bank or cash account of an organization.
type Account struct {
	ID             string         `json:"id"`
	Code           string         `json:"code,omitempty"`
	Name           string         `json:"name"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Type           string         `json:"type,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

// AccountingAccount is a chart-of-accounts entry.
type AccountingAccount struct {
	ID   string         `json:"id"`
	Code string         `json:"code,omitempty"`
	Name string         `json:"name"`
	Data map[string]any `json:"data,omitempty"`
}

// ItemError describes one reference item that failed to reconcile.
// Type is the entity type, or ErrTypeSystem for run-level failures.
type ItemError struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// SyncResult summarises one sync run. Serializable as-is for the CLI's
// --json mode and any admin HTTP layer sitting on top.
type SyncResult struct {
	RunID   string      `json:"run_id,omitempty"`
	Success bool        `json:"success"`
	Synced  int         `json:"synced"`
	Total   int         `json:"total"`
	Failed  int         `json:"failed"`
	Errors  []ItemError `json:"errors,omitempty"`
	Version int64       `json:"version,omitempty"`
	Message string      `json:"message,omitempty"`
}

// MaintenanceResult summarises a bulk maintenance operation.
type MaintenanceResult struct {
	Success                bool   `json:"success"`
	Message                string `json:"message,omitempty"`
	RowsDeleted            int64  `json:"rows_deleted"`
	OrganizationsPreserved int64  `json:"organizations_preserved,omitempty"`
	WarehousesCreated      int    `json:"warehouses_created,omitempty"`
}

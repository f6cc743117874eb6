// Package nsisync reconciles reference-data deltas from the UH accounting
// system into the local store: it merges the general and warehouse-only
// feeds, applies items in dependency order, repairs dangling foreign keys
// with stub records, and tracks the incremental cursor.
package nsisync

import (
	"context"

	"github.com/marcus/nsisync/internal/models"
)

// Feed supplies delta batches of reference items. Implemented by
// feedclient.Client; engine tests use fakes.
type Feed interface {
	GetDelta(ctx context.Context, since int64) (*models.Delta, error)
	GetWarehouseDelta(ctx context.Context, since int64) ([]models.DeltaItem, error)
}

// Store is the persistent store the reconcilers write to. Implemented by
// db.DB.
type Store interface {
	GetSyncCursor() (models.SyncCursor, error)
	AppendSyncCursor(version int64, itemsSynced int) error

	UpsertOrganization(org models.Organization) error
	UpdateOrganizationByCode(code string, org models.Organization) error
	GetOrganizationByID(id string) (*models.Organization, error)
	GetOrganizationByCode(code string) (*models.Organization, error)

	UpsertCounterparty(cp models.Counterparty) error
	GetCounterpartyByID(id string) (*models.Counterparty, error)

	UpsertContract(c models.Contract) error
	UpsertWarehouse(w models.Warehouse) error
	UpsertNomenclature(n models.Nomenclature) error
	UpsertAccount(a models.Account) error
	UpsertAccountingAccount(a models.AccountingAccount) error
}

// MaintenanceStore is the slice of the store the maintenance operations use.
type MaintenanceStore interface {
	ClearNSIData() (deleted, preserved int64, err error)
	ClearPortalData() (deleted, preserved int64, err error)
	SeedWarehouses() (created int, err error)
	ClearSeededWarehouses() (deleted int64, err error)
}

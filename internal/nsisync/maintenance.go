package nsisync

import (
	"fmt"
	"log/slog"

	"github.com/marcus/nsisync/internal/models"
)

// Maintenance operations are independent of the sync pipeline. Each resets
// or respects the cursor consistently: both clear variants append a
// version-0 cursor row in the same transaction as the deletes, so the next
// run performs a full re-fetch.

// ClearNSIData bulk-deletes the reference tables, preserving organizations
// still referenced by users, documents, or packages.
func ClearNSIData(store MaintenanceStore) models.MaintenanceResult {
	deleted, preserved, err := store.ClearNSIData()
	if err != nil {
		slog.Error("clear NSI data failed", "err", err)
		return models.MaintenanceResult{Message: err.Error()}
	}
	slog.Info("NSI data cleared", "deleted", deleted, "organizations_preserved", preserved)
	return models.MaintenanceResult{
		Success:                true,
		Message:                fmt.Sprintf("deleted %d rows, preserved %d organizations, cursor reset", deleted, preserved),
		RowsDeleted:            deleted,
		OrganizationsPreserved: preserved,
	}
}

// ClearPortalData additionally deletes documents, packages, and the export
// queue, preserving only organizations referenced by users.
func ClearPortalData(store MaintenanceStore) models.MaintenanceResult {
	deleted, preserved, err := store.ClearPortalData()
	if err != nil {
		slog.Error("clear portal data failed", "err", err)
		return models.MaintenanceResult{Message: err.Error()}
	}
	slog.Info("portal data cleared", "deleted", deleted, "organizations_preserved", preserved)
	return models.MaintenanceResult{
		Success:                true,
		Message:                fmt.Sprintf("deleted %d rows, preserved %d organizations, cursor reset", deleted, preserved),
		RowsDeleted:            deleted,
		OrganizationsPreserved: preserved,
	}
}

// SeedWarehouses bootstraps conventional warehouses for organizations that
// have none, for environments where upstream does not yet provide them.
func SeedWarehouses(store MaintenanceStore) models.MaintenanceResult {
	created, err := store.SeedWarehouses()
	if err != nil {
		slog.Error("seed warehouses failed", "err", err)
		return models.MaintenanceResult{Message: err.Error()}
	}
	slog.Info("warehouses seeded", "created", created)
	return models.MaintenanceResult{
		Success:           true,
		Message:           fmt.Sprintf("created %d warehouses", created),
		WarehousesCreated: created,
	}
}

// ClearSeededWarehouses removes only the warehouses SeedWarehouses created.
func ClearSeededWarehouses(store MaintenanceStore) models.MaintenanceResult {
	deleted, err := store.ClearSeededWarehouses()
	if err != nil {
		slog.Error("clear seeded warehouses failed", "err", err)
		return models.MaintenanceResult{Message: err.Error()}
	}
	slog.Info("seeded warehouses cleared", "deleted", deleted)
	return models.MaintenanceResult{
		Success:     true,
		Message:     fmt.Sprintf("deleted %d seeded warehouses", deleted),
		RowsDeleted: deleted,
	}
}

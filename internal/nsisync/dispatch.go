package nsisync

import (
	"log/slog"

	"github.com/marcus/nsisync/internal/models"
)

// processingOrder is the fixed dependency order: Contract references both
// Organization and Counterparty; Warehouse and Account reference
// Organization; Nomenclature and AccountingAccount are independent leaves.
var processingOrder = []models.EntityType{
	models.EntityOrganization,
	models.EntityCounterparty,
	models.EntityContract,
	models.EntityWarehouse,
	models.EntityNomenclature,
	models.EntityAccount,
	models.EntityAccountingAccount,
}

// orderByDependency buckets items by type, preserving arrival order within a
// bucket, and concatenates the buckets in processingOrder. Unrecognized
// types are logged and dropped; they are not an error.
func orderByDependency(items []models.DeltaItem) []models.DeltaItem {
	buckets := make(map[models.EntityType][]models.DeltaItem, len(processingOrder))
	known := make(map[models.EntityType]bool, len(processingOrder))
	for _, t := range processingOrder {
		known[t] = true
	}

	for _, item := range items {
		if !known[item.Type] {
			slog.Warn("skipping unknown reference item type", "type", item.Type, "id", item.ID)
			continue
		}
		buckets[item.Type] = append(buckets[item.Type], item)
	}

	ordered := make([]models.DeltaItem, 0, len(items))
	for _, t := range processingOrder {
		ordered = append(ordered, buckets[t]...)
	}
	return ordered
}

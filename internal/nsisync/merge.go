package nsisync

import (
	"log/slog"

	"github.com/marcus/nsisync/internal/models"
)

// mergeWarehouseItems appends warehouse-feed items missing from the general
// feed. A warehouse present in both feeds is reconciled exactly once per run.
func mergeWarehouseItems(general, warehouse []models.DeltaItem) []models.DeltaItem {
	seen := make(map[string]struct{}, len(general))
	for _, item := range general {
		seen[item.ID] = struct{}{}
	}

	merged := general
	for _, item := range warehouse {
		if item.Type != models.EntityWarehouse {
			slog.Debug("skipping non-warehouse item from warehouse feed", "type", item.Type, "id", item.ID)
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		merged = append(merged, item)
		seen[item.ID] = struct{}{}
	}
	return merged
}

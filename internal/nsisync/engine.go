package nsisync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/marcus/nsisync/internal/models"
)

// run executes one full synchronization: fetch both feeds, merge, dispatch
// in dependency order, reconcile item by item, then persist the new cursor.
//
// Item failures do not stop the batch; they flip Success and populate
// Errors. The cursor still advances on partial failure: failed items are
// expected to reappear in a future delta from upstream rather than being
// retried immediately.
func run(ctx context.Context, feed Feed, store Store) models.SyncResult {
	result := models.SyncResult{RunID: uuid.NewString()}

	cursor, err := store.GetSyncCursor()
	if err != nil {
		return systemFailure(result, fmt.Errorf("read sync cursor: %w", err))
	}

	delta, err := feed.GetDelta(ctx, cursor.Version)
	if err != nil {
		return systemFailure(result, fmt.Errorf("fetch delta: %w", err))
	}

	items := delta.Items
	warehouseItems, err := feed.GetWarehouseDelta(ctx, cursor.Version)
	if err != nil {
		// The merge step must never fail the whole run.
		slog.Warn("warehouse feed fetch failed, continuing with general feed", "err", err)
	} else {
		items = mergeWarehouseItems(items, warehouseItems)
	}

	ordered := orderByDependency(items)
	rec := &reconciler{store: store}

	for _, item := range ordered {
		if err := rec.reconcile(item); err != nil {
			slog.Warn("reconcile failed", "type", item.Type, "id", item.ID, "err", err)
			result.Errors = append(result.Errors, models.ItemError{
				Type:    string(item.Type),
				ID:      item.ID,
				Name:    displayName(item),
				Message: err.Error(),
			})
			continue
		}
		result.Synced++
	}

	result.Total = len(ordered)
	result.Failed = len(result.Errors)
	result.Success = result.Failed == 0
	result.Version = delta.Version

	// Written once per completed run, after all item processing, so a reader
	// never observes a version whose items are only partially applied. An
	// empty delta at the same version leaves the cursor history untouched.
	if result.Total > 0 || delta.Version != cursor.Version {
		if err := store.AppendSyncCursor(delta.Version, result.Synced); err != nil {
			return systemFailure(result, fmt.Errorf("persist sync cursor: %w", err))
		}
	}

	if result.Success {
		result.Message = fmt.Sprintf("synced %d of %d items at version %d", result.Synced, result.Total, result.Version)
	} else {
		result.Message = fmt.Sprintf("synced %d of %d items at version %d, %d failed", result.Synced, result.Total, result.Version, result.Failed)
	}

	slog.Info("sync run complete",
		"run_id", result.RunID,
		"version", result.Version,
		"synced", result.Synced,
		"failed", result.Failed,
	)
	return result
}

// runWarehouses reconciles only the warehouse feed. It never touches the
// main cursor: the warehouse feed is a supplementary, independently
// idempotent channel, so it always re-fetches from zero.
func runWarehouses(ctx context.Context, feed Feed, store Store) models.SyncResult {
	result := models.SyncResult{RunID: uuid.NewString()}

	items, err := feed.GetWarehouseDelta(ctx, 0)
	if err != nil {
		return systemFailure(result, fmt.Errorf("fetch warehouse delta: %w", err))
	}

	rec := &reconciler{store: store}
	for _, item := range items {
		if item.Type != models.EntityWarehouse {
			slog.Warn("skipping non-warehouse item from warehouse feed", "type", item.Type, "id", item.ID)
			continue
		}
		result.Total++
		if err := rec.reconcile(item); err != nil {
			slog.Warn("reconcile failed", "type", item.Type, "id", item.ID, "err", err)
			result.Errors = append(result.Errors, models.ItemError{
				Type:    string(item.Type),
				ID:      item.ID,
				Name:    displayName(item),
				Message: err.Error(),
			})
			continue
		}
		result.Synced++
	}

	result.Failed = len(result.Errors)
	result.Success = result.Failed == 0
	result.Message = fmt.Sprintf("synced %d of %d warehouses", result.Synced, result.Total)

	slog.Info("warehouse sync complete", "run_id", result.RunID, "synced", result.Synced, "failed", result.Failed)
	return result
}

// systemFailure produces the fail-fast result: a single run-level error,
// nothing synced, cursor untouched.
func systemFailure(result models.SyncResult, err error) models.SyncResult {
	slog.Error("sync run failed", "run_id", result.RunID, "err", err)
	result.Success = false
	result.Message = err.Error()
	result.Errors = append(result.Errors, models.ItemError{
		Type:    models.ErrTypeSystem,
		Message: err.Error(),
	})
	result.Failed = len(result.Errors)
	return result
}

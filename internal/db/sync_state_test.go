package db

import (
	"testing"
)

func TestGetSyncCursorEmpty(t *testing.T) {
	db := testDB(t)

	cur, err := db.GetSyncCursor()
	if err != nil {
		t.Fatalf("GetSyncCursor failed: %v", err)
	}
	if cur.Version != 0 || cur.ItemsSynced != 0 {
		t.Errorf("fresh cursor = %+v, want zero", cur)
	}
}

func TestAppendSyncCursor(t *testing.T) {
	db := testDB(t)

	if err := db.AppendSyncCursor(7, 3); err != nil {
		t.Fatalf("AppendSyncCursor failed: %v", err)
	}
	if err := db.AppendSyncCursor(12, 5); err != nil {
		t.Fatalf("AppendSyncCursor failed: %v", err)
	}

	cur, err := db.GetSyncCursor()
	if err != nil {
		t.Fatalf("GetSyncCursor failed: %v", err)
	}
	if cur.Version != 12 {
		t.Errorf("cursor version = %d, want 12", cur.Version)
	}
	if cur.ItemsSynced != 5 {
		t.Errorf("cursor items = %d, want 5", cur.ItemsSynced)
	}
	if cur.SyncedAt.IsZero() {
		t.Error("synced_at not populated")
	}
}

func TestResetSyncCursorKeepsHistory(t *testing.T) {
	db := testDB(t)

	if err := db.AppendSyncCursor(42, 10); err != nil {
		t.Fatalf("AppendSyncCursor failed: %v", err)
	}
	if err := db.ResetSyncCursor(); err != nil {
		t.Fatalf("ResetSyncCursor failed: %v", err)
	}

	cur, err := db.GetSyncCursor()
	if err != nil {
		t.Fatalf("GetSyncCursor failed: %v", err)
	}
	if cur.Version != 0 {
		t.Errorf("cursor version after reset = %d, want 0", cur.Version)
	}

	history, err := db.GetSyncHistory(10)
	if err != nil {
		t.Fatalf("GetSyncHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	// Newest first.
	if history[0].Version != 0 || history[1].Version != 42 {
		t.Errorf("history order wrong: %+v", history)
	}
}

func TestGetSyncHistoryLimit(t *testing.T) {
	db := testDB(t)

	for v := int64(1); v <= 5; v++ {
		if err := db.AppendSyncCursor(v, int(v)); err != nil {
			t.Fatalf("AppendSyncCursor failed: %v", err)
		}
	}

	history, err := db.GetSyncHistory(3)
	if err != nil {
		t.Fatalf("GetSyncHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[0].Version != 5 || history[2].Version != 3 {
		t.Errorf("unexpected window: %+v", history)
	}
}

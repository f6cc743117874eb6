package nsisync

import (
	"errors"
	"strings"
	"testing"

	"github.com/marcus/nsisync/internal/models"
)

func TestClearNSIData(t *testing.T) {
	store := testStore(t)
	if err := store.UpsertOrganization(models.Organization{ID: "org-1", Code: "ORG1", Name: "Acme"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.UpsertNomenclature(models.Nomenclature{ID: "nom-1", Name: "Cement"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := ClearNSIData(store)
	if !res.Success {
		t.Fatalf("ClearNSIData failed: %s", res.Message)
	}
	if res.RowsDeleted != 2 {
		t.Errorf("deleted = %d, want 2", res.RowsDeleted)
	}
	if !strings.Contains(res.Message, "cursor reset") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestSeedAndClearSeededWarehouses(t *testing.T) {
	store := testStore(t)
	if err := store.UpsertOrganization(models.Organization{ID: "org-1", Code: "ORG1", Name: "Acme"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res := SeedWarehouses(store)
	if !res.Success {
		t.Fatalf("SeedWarehouses failed: %s", res.Message)
	}
	if res.WarehousesCreated != 3 {
		t.Errorf("created = %d, want 3", res.WarehousesCreated)
	}

	res = ClearSeededWarehouses(store)
	if !res.Success {
		t.Fatalf("ClearSeededWarehouses failed: %s", res.Message)
	}
	if res.RowsDeleted != 3 {
		t.Errorf("deleted = %d, want 3", res.RowsDeleted)
	}
}

// failingMaintenanceStore wraps the real store and fails every operation.
type failingMaintenanceStore struct {
	MaintenanceStore
}

func (f *failingMaintenanceStore) ClearPortalData() (int64, int64, error) {
	return 0, 0, errors.New("disk full")
}

func TestMaintenanceFailureReported(t *testing.T) {
	store := &failingMaintenanceStore{MaintenanceStore: testStore(t)}

	res := ClearPortalData(store)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Message, "disk full") {
		t.Errorf("message = %q", res.Message)
	}
}

package db

import (
	"testing"

	"github.com/marcus/nsisync/internal/models"
)

func TestUpsertOrganization(t *testing.T) {
	db := testDB(t)

	org := models.Organization{ID: "org-1", Code: "ORG1", Name: "Acme", INN: "7701234567"}
	if err := db.UpsertOrganization(org); err != nil {
		t.Fatalf("UpsertOrganization failed: %v", err)
	}

	got, err := db.GetOrganizationByID("org-1")
	if err != nil {
		t.Fatalf("GetOrganizationByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("organization not found")
	}
	if got.Code != "ORG1" || got.Name != "Acme" || got.INN != "7701234567" {
		t.Errorf("got %+v", got)
	}
}

func TestUpsertOrganizationOverwritesStub(t *testing.T) {
	db := testDB(t)

	stub := models.Organization{ID: "org-1", Code: "STUB-org-1", Name: "Organization org-1"}
	if err := db.UpsertOrganization(stub); err != nil {
		t.Fatalf("insert stub failed: %v", err)
	}

	real := models.Organization{ID: "org-1", Code: "ORG1", Name: "Acme", INN: "7701234567"}
	if err := db.UpsertOrganization(real); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := db.GetOrganizationByID("org-1")
	if err != nil {
		t.Fatalf("GetOrganizationByID failed: %v", err)
	}
	if got.Code != "ORG1" {
		t.Errorf("stub code survived overwrite: %s", got.Code)
	}
	if got.Name != "Acme" {
		t.Errorf("stub name survived overwrite: %s", got.Name)
	}

	if byStub, _ := db.GetOrganizationByCode("STUB-org-1"); byStub != nil {
		t.Error("stub code still resolves after overwrite")
	}
}

func TestUpdateOrganizationByCodeKeepsLocalID(t *testing.T) {
	db := testDB(t)

	local := models.Organization{ID: "local-1", Code: "ORG1", Name: "Old name"}
	if err := db.UpsertOrganization(local); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	upstream := models.Organization{ID: "uh-777", Code: "ORG1", Name: "New name", INN: "7701"}
	if err := db.UpdateOrganizationByCode("ORG1", upstream); err != nil {
		t.Fatalf("UpdateOrganizationByCode failed: %v", err)
	}

	got, err := db.GetOrganizationByCode("ORG1")
	if err != nil {
		t.Fatalf("GetOrganizationByCode failed: %v", err)
	}
	if got.ID != "local-1" {
		t.Errorf("local id replaced: %s", got.ID)
	}
	if got.Name != "New name" || got.INN != "7701" {
		t.Errorf("fields not refreshed: %+v", got)
	}

	if byUpstream, _ := db.GetOrganizationByID("uh-777"); byUpstream != nil {
		t.Error("upstream id must not create a second row")
	}
}

func TestGetOrganizationByCodeMissing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetOrganizationByCode("NOPE")
	if err != nil {
		t.Fatalf("GetOrganizationByCode failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

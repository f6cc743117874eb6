package nsisync

import (
	"fmt"

	"github.com/marcus/nsisync/internal/models"
)

// stubCodePrefix namespaces synthetic organization codes so they can never
// collide with real UH codes.
const stubCodePrefix = "STUB-"

const unnamedPlaceholder = "(unnamed)"

// reconciler applies one delta item at a time. Items within a run must be
// processed sequentially: later items depend on earlier ones having been
// committed.
type reconciler struct {
	store Store
}

func (r *reconciler) reconcile(item models.DeltaItem) error {
	switch item.Type {
	case models.EntityOrganization:
		return r.organization(item)
	case models.EntityCounterparty:
		return r.counterparty(item)
	case models.EntityContract:
		return r.contract(item)
	case models.EntityWarehouse:
		return r.warehouse(item)
	case models.EntityNomenclature:
		return r.nomenclature(item)
	case models.EntityAccount:
		return r.account(item)
	case models.EntityAccountingAccount:
		return r.accountingAccount(item)
	default:
		return fmt.Errorf("no reconciler for type %q", item.Type)
	}
}

// organization upserts by id, falling back to a code match before inserting:
// upstream organization ids may differ from locally seeded ones, and a code
// match must update the existing row instead of duplicating it.
func (r *reconciler) organization(item models.DeltaItem) error {
	code := itemCode(item)
	if code == "" {
		code = item.ID
	}
	org := models.Organization{
		ID:   item.ID,
		Code: code,
		Name: displayName(item),
		INN:  dataString(item.Data, "inn"),
		Data: item.Data,
	}

	existing, err := r.store.GetOrganizationByID(item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		byCode, err := r.store.GetOrganizationByCode(code)
		if err != nil {
			return err
		}
		if byCode != nil {
			return r.store.UpdateOrganizationByCode(code, org)
		}
	}
	return r.store.UpsertOrganization(org)
}

func (r *reconciler) counterparty(item models.DeltaItem) error {
	return r.store.UpsertCounterparty(models.Counterparty{
		ID:   item.ID,
		Name: displayName(item),
		INN:  dataString(item.Data, "inn"),
		Data: item.Data,
	})
}

func (r *reconciler) contract(item models.DeltaItem) error {
	orgID := dataString(item.Data, "organizationId", "organization_id")
	cpID := dataString(item.Data, "counterpartyId", "counterparty_id")

	if orgID != "" {
		if err := r.ensureOrganization(orgID); err != nil {
			return err
		}
	}
	if cpID != "" {
		if err := r.ensureCounterparty(cpID); err != nil {
			return err
		}
	}

	return r.store.UpsertContract(models.Contract{
		ID:             item.ID,
		Name:           displayName(item),
		OrganizationID: orgID,
		CounterpartyID: cpID,
		Data:           item.Data,
	})
}

func (r *reconciler) warehouse(item models.DeltaItem) error {
	orgID := dataString(item.Data, "organizationId", "organization_id")

	if orgID != "" {
		if err := r.ensureOrganization(orgID); err != nil {
			return err
		}
	}

	return r.store.UpsertWarehouse(models.Warehouse{
		ID:             item.ID,
		Code:           itemCode(item),
		Name:           displayName(item),
		OrganizationID: orgID,
		Data:           item.Data,
	})
}

func (r *reconciler) nomenclature(item models.DeltaItem) error {
	return r.store.UpsertNomenclature(models.Nomenclature{
		ID:   item.ID,
		Code: itemCode(item),
		Name: displayName(item),
		Data: item.Data,
	})
}

func (r *reconciler) account(item models.DeltaItem) error {
	orgID := dataString(item.Data, "organizationId", "organization_id")

	if orgID != "" {
		if err := r.ensureOrganization(orgID); err != nil {
			return err
		}
	}

	return r.store.UpsertAccount(models.Account{
		ID:             item.ID,
		Code:           itemCode(item),
		Name:           displayName(item),
		OrganizationID: orgID,
		Type:           dataString(item.Data, "type", "accountType"),
		Data:           item.Data,
	})
}

func (r *reconciler) accountingAccount(item models.DeltaItem) error {
	return r.store.UpsertAccountingAccount(models.AccountingAccount{
		ID:   item.ID,
		Code: itemCode(item),
		Name: displayName(item),
		Data: item.Data,
	})
}

// ensureOrganization inserts a minimal stub row when the referenced
// organization has not arrived yet, so dependent foreign key writes cannot
// fail. A later real record overwrites the stub through the normal upsert.
func (r *reconciler) ensureOrganization(id string) error {
	existing, err := r.store.GetOrganizationByID(id)
	if err != nil {
		return fmt.Errorf("lookup organization %s: %w", id, err)
	}
	if existing != nil {
		return nil
	}
	return r.store.UpsertOrganization(models.Organization{
		ID:   id,
		Code: stubCodePrefix + id,
		Name: stubName("Organization", id),
	})
}

// ensureCounterparty is the counterparty variant of the integrity guard.
func (r *reconciler) ensureCounterparty(id string) error {
	existing, err := r.store.GetCounterpartyByID(id)
	if err != nil {
		return fmt.Errorf("lookup counterparty %s: %w", id, err)
	}
	if existing != nil {
		return nil
	}
	return r.store.UpsertCounterparty(models.Counterparty{
		ID:   id,
		Name: stubName("Counterparty", id),
	})
}

// displayName resolves the record name through the fallback chain:
// explicit name, data.name, code, id, literal placeholder. A record is never
// created with an empty display name.
func displayName(item models.DeltaItem) string {
	if item.Name != "" {
		return item.Name
	}
	if s := dataString(item.Data, "name"); s != "" {
		return s
	}
	if code := itemCode(item); code != "" {
		return code
	}
	if item.ID != "" {
		return item.ID
	}
	return unnamedPlaceholder
}

// itemCode resolves the code from the item with a data-bag fallback.
func itemCode(item models.DeltaItem) string {
	if item.Code != "" {
		return item.Code
	}
	return dataString(item.Data, "code")
}

// dataString returns the first non-empty string value among keys.
func dataString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// stubName derives a placeholder display name from a truncated id.
func stubName(kind, id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s %s", kind, short)
}

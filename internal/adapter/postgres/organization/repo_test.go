package organization_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/organization"
	"github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

func uniq(name string) string {
	return name + " " + uuid.New().String()[:8]
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	name := uniq("ООО Рога и Копыта")
	got, err := repo.Create(ctx, &domain.Organization{Name: name})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("expected store-assigned id")
	}
	if got.Name != name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, name)
	}
	if got.Phones == nil || got.Offices == nil {
		t.Error("expected empty non-nil collections on a fresh organization")
	}
}

func TestRepo_AddPhone(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))

	phone, err := repo.AddPhone(ctx, org.ID, "2-222-222")
	if err != nil {
		t.Fatalf("AddPhone: unexpected error: %v", err)
	}
	if phone.Number != "2-222-222" {
		t.Errorf("Number mismatch: got %q", phone.Number)
	}

	_, err = repo.AddPhone(ctx, org.ID, "2-222-222")
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_AddPhone_UnknownOrganization(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)

	_, err := repo.AddPhone(context.Background(), uuid.New(), "3-333-333")
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_LinkOffice_Idempotent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	b := testhelper.SeedBuilding(t, pool, 55.0, 37.0)
	office := testhelper.SeedOffice(t, pool, b.ID, 1)
	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))

	if err := repo.LinkOffice(ctx, org.ID, office.ID); err != nil {
		t.Fatalf("LinkOffice first: %v", err)
	}
	if err := repo.LinkOffice(ctx, org.ID, office.ID); err != nil {
		t.Fatalf("LinkOffice second (idempotent): %v", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM organization_offices WHERE organization_id = $1`, org.ID).Scan(&count); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 junction row, got %d", count)
	}
}

func TestRepo_LinkActivity_UnknownActivity(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))

	err := repo.LinkActivity(ctx, org.ID, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Delete_CascadesPhonesAndLinks(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))
	b := testhelper.SeedBuilding(t, pool, 55.0, 37.0)
	office := testhelper.SeedOffice(t, pool, b.ID, 1)
	testhelper.LinkOrgOffice(t, pool, org.ID, office.ID)

	if err := repo.Delete(ctx, org.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}

	for _, q := range []string{
		`SELECT count(*) FROM organization_phones WHERE organization_id = $1`,
		`SELECT count(*) FROM organization_offices WHERE organization_id = $1`,
	} {
		var count int
		if err := pool.QueryRow(ctx, q, org.ID).Scan(&count); err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected cascade delete, query %q found %d rows", q, count)
		}
	}
}

// ---------------------------------------------------------------------------
// Match queries
// ---------------------------------------------------------------------------

func TestRepo_IDsByBuilding(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	b := testhelper.SeedBuilding(t, pool, 55.0, 37.0)
	other := testhelper.SeedBuilding(t, pool, 56.0, 38.0)
	office1 := testhelper.SeedOffice(t, pool, b.ID, 1)
	office2 := testhelper.SeedOffice(t, pool, b.ID, 2)
	officeOther := testhelper.SeedOffice(t, pool, other.ID, 1)

	tenant := testhelper.SeedOrganization(t, pool, uniq("Жилец"))
	testhelper.LinkOrgOffice(t, pool, tenant.ID, office1.ID)
	testhelper.LinkOrgOffice(t, pool, tenant.ID, office2.ID)

	elsewhere := testhelper.SeedOrganization(t, pool, uniq("Другой"))
	testhelper.LinkOrgOffice(t, pool, elsewhere.ID, officeOther.ID)

	ids, err := repo.IDsByBuilding(ctx, b.ID)
	if err != nil {
		t.Fatalf("IDsByBuilding: unexpected error: %v", err)
	}

	// Two offices in one building produce two candidate rows for the same
	// organization; the dedup belongs to hydration, not the match query.
	if len(ids) != 2 {
		t.Fatalf("expected 2 candidate rows, got %d", len(ids))
	}
	for _, id := range ids {
		if id != tenant.ID {
			t.Errorf("unexpected candidate %s", id)
		}
	}
}

func TestRepo_IDsByBuilding_UnknownBuildingEmpty(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)

	ids, err := repo.IDsByBuilding(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("IDsByBuilding: unexpected error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ids)
	}
}

func TestRepo_IDsByActivities(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	food := testhelper.SeedActivity(t, pool, uniq("Еда"), uuid.Nil, 0)
	meat := testhelper.SeedActivity(t, pool, uniq("Мясо"), food.ID, 1)

	cafe := testhelper.SeedOrganization(t, pool, uniq("Кафе"))
	butcher := testhelper.SeedOrganization(t, pool, uniq("Мясная лавка"))
	testhelper.LinkOrgActivity(t, pool, cafe.ID, food.ID)
	testhelper.LinkOrgActivity(t, pool, butcher.ID, meat.ID)

	ids, err := repo.IDsByActivities(ctx, []uuid.UUID{food.ID, meat.ID})
	if err != nil {
		t.Fatalf("IDsByActivities: unexpected error: %v", err)
	}

	want := map[uuid.UUID]bool{cafe.ID: true, butcher.ID: true}
	if len(ids) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ids))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected candidate %s", id)
		}
	}
}

func TestRepo_IDsByActivities_EmptyInput(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)

	ids, err := repo.IDsByActivities(context.Background(), nil)
	if err != nil {
		t.Fatalf("IDsByActivities: unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty result for empty input, got %v", ids)
	}
}

func TestRepo_IDsInArea(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	inside := testhelper.SeedBuilding(t, pool, 55.5, 37.5)
	onEdge := testhelper.SeedBuilding(t, pool, 56.0, 37.5)
	outside := testhelper.SeedBuilding(t, pool, 56.5, 37.5)

	var orgs []uuid.UUID
	for _, b := range []domain.Building{inside, onEdge, outside} {
		office := testhelper.SeedOffice(t, pool, b.ID, 1)
		org := testhelper.SeedOrganization(t, pool, uniq("Орг"))
		testhelper.LinkOrgOffice(t, pool, org.ID, office.ID)
		orgs = append(orgs, org.ID)
	}

	ids, err := repo.IDsInArea(ctx, 55.0, 56.0, 37.0, 38.0)
	if err != nil {
		t.Fatalf("IDsInArea: unexpected error: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if !got[orgs[0]] {
		t.Error("expected the inside organization to match")
	}
	if !got[orgs[1]] {
		t.Error("expected the boundary organization to match (closed rectangle)")
	}
	if got[orgs[2]] {
		t.Error("organization at lat 56.5 must not match")
	}
}

func TestRepo_IDsInArea_InvertedBoundsEmpty(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	b := testhelper.SeedBuilding(t, pool, 55.5, 37.5)
	office := testhelper.SeedOffice(t, pool, b.ID, 1)
	org := testhelper.SeedOrganization(t, pool, uniq("Орг"))
	testhelper.LinkOrgOffice(t, pool, org.ID, office.ID)

	// min > max: the bounds are applied as given and match nothing.
	ids, err := repo.IDsInArea(ctx, 56.0, 55.0, 38.0, 37.0)
	if err != nil {
		t.Fatalf("IDsInArea: unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no matches for inverted bounds, got %v", ids)
	}
}

func TestRepo_IDsByName_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	marker := uuid.New().String()[:8]
	romashka := testhelper.SeedOrganization(t, pool, "Кафе Ромашка "+marker)
	inter := testhelper.SeedOrganization(t, pool, "ИнтерКафе "+marker)
	restaurant := testhelper.SeedOrganization(t, pool, "Ресторан Огонёк "+marker)

	ids, err := repo.IDsByName(ctx, "кафе")
	if err != nil {
		t.Fatalf("IDsByName: unexpected error: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if !got[romashka.ID] {
		t.Error("expected Кафе Ромашка to match query кафе")
	}
	if !got[inter.ID] {
		t.Error("expected ИнтерКафе to match query кафе (substring, case-insensitive)")
	}
	if got[restaurant.ID] {
		t.Error("Ресторан must not match query кафе")
	}
}

func TestRepo_IDsByName_MetacharactersLiteral(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	marker := uuid.New().String()[:8]
	percent := testhelper.SeedOrganization(t, pool, "Скидки 100% "+marker)
	plain := testhelper.SeedOrganization(t, pool, "Скидки всем "+marker)

	ids, err := repo.IDsByName(ctx, "100%")
	if err != nil {
		t.Fatalf("IDsByName: unexpected error: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if !got[percent.ID] {
		t.Error("expected the literal %% name to match")
	}
	if got[plain.ID] {
		t.Error("%% must not act as a wildcard")
	}
}

// ---------------------------------------------------------------------------
// FetchAggregates
// ---------------------------------------------------------------------------

func TestRepo_FetchAggregates_RoundTrip(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	b1 := testhelper.SeedBuilding(t, pool, 55.0, 37.0)
	b2 := testhelper.SeedBuilding(t, pool, 56.0, 38.0)
	office1 := testhelper.SeedOffice(t, pool, b1.ID, 1)
	office2 := testhelper.SeedOffice(t, pool, b2.ID, 2)

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе Ромашка"))
	if _, err := repo.AddPhone(ctx, org.ID, "3-333-333"); err != nil {
		t.Fatalf("AddPhone: %v", err)
	}
	testhelper.LinkOrgOffice(t, pool, org.ID, office1.ID)
	testhelper.LinkOrgOffice(t, pool, org.ID, office2.ID)

	got, err := repo.FetchAggregates(ctx, []uuid.UUID{org.ID}, false)
	if err != nil {
		t.Fatalf("FetchAggregates: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(got))
	}

	agg := got[0]
	if agg.Name != org.Name {
		t.Errorf("Name mismatch: got %q, want %q", agg.Name, org.Name)
	}
	// The seed helper already attached one phone.
	if len(agg.Phones) != 2 {
		t.Errorf("expected 2 phones, got %d", len(agg.Phones))
	}
	if len(agg.Offices) != 2 {
		t.Fatalf("expected 2 offices, got %d", len(agg.Offices))
	}
	for _, o := range agg.Offices {
		if o.Building == nil {
			t.Fatalf("office %s missing nested building", o.ID)
		}
		if o.Building.ID != o.BuildingID {
			t.Errorf("nested building id mismatch: %s vs %s", o.Building.ID, o.BuildingID)
		}
	}
	if agg.Activities != nil {
		t.Error("expected nil Activities in list shape")
	}
}

func TestRepo_FetchAggregates_WithActivities(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	food := testhelper.SeedActivity(t, pool, uniq("Еда"), uuid.Nil, 0)
	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))
	testhelper.LinkOrgActivity(t, pool, org.ID, food.ID)

	got, err := repo.FetchAggregates(ctx, []uuid.UUID{org.ID}, true)
	if err != nil {
		t.Fatalf("FetchAggregates: unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(got))
	}
	if len(got[0].Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(got[0].Activities))
	}
	if got[0].Activities[0].ID != food.ID {
		t.Errorf("activity id mismatch: got %s, want %s", got[0].Activities[0].ID, food.ID)
	}
	if got[0].Activities[0].Level != 0 {
		t.Errorf("activity level mismatch: got %d", got[0].Activities[0].Level)
	}
}

func TestRepo_FetchAggregates_DedupsCandidates(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))

	got, err := repo.FetchAggregates(ctx, []uuid.UUID{org.ID, org.ID, org.ID}, false)
	if err != nil {
		t.Fatalf("FetchAggregates: unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 aggregate for repeated candidates, got %d", len(got))
	}
}

func TestRepo_FetchAggregates_UnknownIDsSkipped(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)
	ctx := context.Background()

	org := testhelper.SeedOrganization(t, pool, uniq("Кафе"))

	got, err := repo.FetchAggregates(ctx, []uuid.UUID{uuid.New(), org.ID}, false)
	if err != nil {
		t.Fatalf("FetchAggregates: unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != org.ID {
		t.Errorf("expected just the known organization, got %v", got)
	}
}

func TestRepo_FetchAggregates_EmptyInput(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := organization.New(pool)

	got, err := repo.FetchAggregates(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("FetchAggregates: unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}

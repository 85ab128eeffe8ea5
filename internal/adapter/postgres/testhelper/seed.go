package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBuilding creates a building at the given coordinates.
// Returns a filled domain.Building.
func SeedBuilding(t *testing.T, pool *pgxpool.Pool, lat, lon float64) domain.Building {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	building := domain.Building{
		ID:        uuid.New(),
		Address:   "Test Street " + suffix,
		Lat:       lat,
		Lon:       lon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO buildings (id, address, lat, lon, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		building.ID, building.Address, building.Lat, building.Lon, building.CreatedAt, building.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBuilding insert: %v", err)
	}

	return building
}

// SeedOffice creates an office in the given building with a unique unit label.
// Returns a filled domain.Office (Building left nil).
func SeedOffice(t *testing.T, pool *pgxpool.Pool, buildingID uuid.UUID, floor int) domain.Office {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	unit := "unit-" + suffix
	office := domain.Office{
		ID:         uuid.New(),
		BuildingID: buildingID,
		Floor:      &floor,
		Unit:       &unit,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO offices (id, building_id, floor, unit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		office.ID, office.BuildingID, office.Floor, office.Unit, office.CreatedAt, office.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOffice insert: %v", err)
	}

	return office
}

// SeedActivity creates an activity at the given level under parentID
// (pass uuid.Nil for a root activity). Returns a filled domain.Activity.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, name string, parentID uuid.UUID, level int) domain.Activity {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	activity := domain.Activity{
		ID:        uuid.New(),
		Name:      name,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parentID != uuid.Nil {
		activity.ParentID = &parentID
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO activities (id, name, parent_id, level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		activity.ID, activity.Name, activity.ParentID, activity.Level, activity.CreatedAt, activity.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity insert: %v", err)
	}

	return activity
}

// SeedOrganization creates an organization with the given name and one phone number.
// Returns a filled domain.Organization with its Phones slice populated.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool, name string) domain.Organization {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		org.ID, org.Name, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization insert organization: %v", err)
	}

	phone := domain.Phone{
		ID:        uuid.New(),
		Number:    "8-800-" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO organization_phones (id, organization_id, phone_number, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		phone.ID, org.ID, phone.Number, phone.CreatedAt, phone.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization insert phone: %v", err)
	}

	org.Phones = []domain.Phone{phone}
	return org
}

// LinkOrgOffice places an organization into an office.
func LinkOrgOffice(t *testing.T, pool *pgxpool.Pool, orgID, officeID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO organization_offices (organization_id, office_id) VALUES ($1, $2)`,
		orgID, officeID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkOrgOffice insert: %v", err)
	}
}

// LinkOrgActivity tags an organization with an activity.
func LinkOrgActivity(t *testing.T, pool *pgxpool.Pool, orgID, activityID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO organization_activities (organization_id, activity_id) VALUES ($1, $2)`,
		orgID, activityID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkOrgActivity insert: %v", err)
	}
}

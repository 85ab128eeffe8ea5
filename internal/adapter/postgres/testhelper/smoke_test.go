package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	building := SeedBuilding(t, pool, 55.75, 37.61)

	// Verify the building exists in DB via SELECT.
	var address string
	err := pool.QueryRow(
		context.Background(),
		`SELECT address FROM buildings WHERE id = $1`,
		building.ID,
	).Scan(&address)
	if err != nil {
		t.Fatalf("expected building in DB, got error: %v", err)
	}

	if address != building.Address {
		t.Fatalf("expected address %q, got %q", building.Address, address)
	}
}

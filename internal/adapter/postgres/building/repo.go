// Package building implements the Building repository using PostgreSQL.
package building

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// Repo provides building persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new building repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const buildingColumns = `id, address, lat, lon, created_at, updated_at`

const createBuildingSQL = `
INSERT INTO buildings (address, lat, lon)
VALUES ($1, $2, $3)
RETURNING ` + buildingColumns

const getBuildingByIDSQL = `
SELECT ` + buildingColumns + `
FROM buildings
WHERE id = $1`

const listBuildingsSQL = `
SELECT ` + buildingColumns + `
FROM buildings
ORDER BY created_at, id
LIMIT $1`

const deleteBuildingSQL = `DELETE FROM buildings WHERE id = $1`

// Create inserts a new building and returns the persisted domain.Building
// with store-assigned id and timestamps.
func (r *Repo) Create(ctx context.Context, b *domain.Building) (*domain.Building, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createBuildingSQL, b.Address, b.Lat, b.Lon)

	created, err := scanBuilding(row)
	if err != nil {
		return nil, postgres.MapError(err, "building", uuid.Nil)
	}

	return created, nil
}

// GetByID returns a building by primary key.
// Returns domain.ErrNotFound if the building does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getBuildingByIDSQL, id)

	b, err := scanBuilding(row)
	if err != nil {
		return nil, postgres.MapError(err, "building", id)
	}

	return b, nil
}

// List returns buildings ordered by creation time.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context, limit int) ([]*domain.Building, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listBuildingsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	result := []*domain.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("list buildings: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}

	return result, nil
}

// Delete removes a building. Offices in the building are cascade-deleted by
// the store. Returns domain.ErrNotFound if the building does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteBuildingSQL, id)
	if err != nil {
		return postgres.MapDeleteError(err, "building", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("building %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// scanBuilding scans one row (pgx.Row or pgx.Rows) into a domain.Building.
func scanBuilding(row pgx.Row) (*domain.Building, error) {
	var b domain.Building
	if err := row.Scan(&b.ID, &b.Address, &b.Lat, &b.Lon, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

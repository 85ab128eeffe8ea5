// Package office implements the Office repository using PostgreSQL.
package office

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// Repo provides office persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new office repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const officeColumns = `id, building_id, floor, unit, created_at, updated_at`

const createOfficeSQL = `
INSERT INTO offices (building_id, floor, unit)
VALUES ($1, $2, $3)
RETURNING ` + officeColumns

const getOfficeByIDSQL = `
SELECT ` + officeColumns + `
FROM offices
WHERE id = $1`

const listOfficesByBuildingSQL = `
SELECT ` + officeColumns + `
FROM offices
WHERE building_id = $1
ORDER BY floor NULLS FIRST, unit NULLS FIRST, id`

const deleteOfficeSQL = `DELETE FROM offices WHERE id = $1`

// Create inserts a new office. Returns domain.ErrAlreadyExists when the
// (building, floor, unit) triple is taken and domain.ErrNotFound when the
// building does not exist.
func (r *Repo) Create(ctx context.Context, o *domain.Office) (*domain.Office, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createOfficeSQL, o.BuildingID, o.Floor, o.Unit)

	created, err := scanOffice(row)
	if err != nil {
		return nil, postgres.MapError(err, "office", uuid.Nil)
	}

	return created, nil
}

// GetByID returns an office by primary key.
// Returns domain.ErrNotFound if the office does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Office, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getOfficeByIDSQL, id)

	o, err := scanOffice(row)
	if err != nil {
		return nil, postgres.MapError(err, "office", id)
	}

	return o, nil
}

// ListByBuilding returns all offices in a building.
// Returns an empty slice (not nil) when the building has none.
func (r *Repo) ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*domain.Office, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listOfficesByBuildingSQL, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list offices by building: %w", err)
	}
	defer rows.Close()

	result := []*domain.Office{}
	for rows.Next() {
		o, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("list offices by building: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offices by building: %w", err)
	}

	return result, nil
}

// Delete removes an office. Junction rows to organizations are
// cascade-deleted by the store. Returns domain.ErrNotFound if the office
// does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteOfficeSQL, id)
	if err != nil {
		return postgres.MapDeleteError(err, "office", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("office %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// scanOffice scans one row into a domain.Office. Floor and unit are nullable.
func scanOffice(row pgx.Row) (*domain.Office, error) {
	var o domain.Office
	if err := row.Scan(&o.ID, &o.BuildingID, &o.Floor, &o.Unit, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

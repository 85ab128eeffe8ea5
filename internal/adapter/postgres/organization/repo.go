// Package organization implements the Organization repository using
// PostgreSQL. It carries the directory's query engine: the match queries
// that select candidate organization ids per filter, and the two-phase
// hydration that turns id sets into deduplicated aggregates.
package organization

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// qb is the statement builder with PostgreSQL placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createOrganizationSQL = `
INSERT INTO organizations (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at`

const addPhoneSQL = `
INSERT INTO organization_phones (organization_id, phone_number)
VALUES ($1, $2)
RETURNING id, phone_number, created_at, updated_at`

const linkOfficeSQL = `
INSERT INTO organization_offices (organization_id, office_id)
VALUES ($1, $2)
ON CONFLICT (organization_id, office_id) DO NOTHING`

const unlinkOfficeSQL = `
DELETE FROM organization_offices
WHERE organization_id = $1 AND office_id = $2`

const linkActivitySQL = `
INSERT INTO organization_activities (organization_id, activity_id)
VALUES ($1, $2)
ON CONFLICT (organization_id, activity_id) DO NOTHING`

const unlinkActivitySQL = `
DELETE FROM organization_activities
WHERE organization_id = $1 AND activity_id = $2`

const deleteOrganizationSQL = `DELETE FROM organizations WHERE id = $1`

// Create inserts a new organization row. Phones and junction links are
// added separately so the registry can wrap the whole insert in one
// transaction.
func (r *Repo) Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.Organization
	err := querier.QueryRow(ctx, createOrganizationSQL, org.Name).
		Scan(&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "organization", uuid.Nil)
	}

	created.Phones = []domain.Phone{}
	created.Offices = []domain.Office{}
	return &created, nil
}

// AddPhone attaches a phone number to an organization.
// Returns domain.ErrAlreadyExists for a duplicate (organization, number)
// pair and domain.ErrNotFound when the organization does not exist.
func (r *Repo) AddPhone(ctx context.Context, orgID uuid.UUID, number string) (*domain.Phone, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Phone
	err := querier.QueryRow(ctx, addPhoneSQL, orgID, number).
		Scan(&p.ID, &p.Number, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "organization_phone", orgID)
	}

	return &p, nil
}

// LinkOffice creates the organization-office junction row.
// Idempotent: linking the same pair twice is not an error.
func (r *Repo) LinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, linkOfficeSQL, orgID, officeID); err != nil {
		return postgres.MapError(err, "organization_office", orgID)
	}
	return nil
}

// UnlinkOffice removes the organization-office junction row.
// Not an error if the link does not exist.
func (r *Repo) UnlinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlinkOfficeSQL, orgID, officeID); err != nil {
		return postgres.MapError(err, "organization_office", orgID)
	}
	return nil
}

// LinkActivity creates the organization-activity junction row.
// Idempotent: linking the same pair twice is not an error.
func (r *Repo) LinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, linkActivitySQL, orgID, activityID); err != nil {
		return postgres.MapError(err, "organization_activity", orgID)
	}
	return nil
}

// UnlinkActivity removes the organization-activity junction row.
// Not an error if the link does not exist.
func (r *Repo) UnlinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlinkActivitySQL, orgID, activityID); err != nil {
		return postgres.MapError(err, "organization_activity", orgID)
	}
	return nil
}

// Delete removes an organization. Phones and junction rows are
// cascade-deleted by the store. Returns domain.ErrNotFound if the
// organization does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteOrganizationSQL, id)
	if err != nil {
		return postgres.MapDeleteError(err, "organization", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Match queries
//
// Each returns candidate organization ids in store row order, possibly with
// duplicates from join fan-out. Deduplication happens in FetchAggregates,
// preserving first-seen order.
// ---------------------------------------------------------------------------

// IDsByBuilding matches organizations having at least one office located in
// the given building.
func (r *Repo) IDsByBuilding(ctx context.Context, buildingID uuid.UUID) ([]uuid.UUID, error) {
	query := qb.Select("oo.organization_id").
		From("organization_offices oo").
		Join("offices o ON o.id = oo.office_id").
		Where(squirrel.Eq{"o.building_id": buildingID})

	ids, err := r.queryIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("match by building: %w", err)
	}
	return ids, nil
}

// IDsByActivities matches organizations whose activity set intersects the
// given id set (typically a resolved subtree).
func (r *Repo) IDsByActivities(ctx context.Context, activityIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(activityIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	query := qb.Select("oa.organization_id").
		From("organization_activities oa").
		Where(squirrel.Eq{"oa.activity_id": activityIDs})

	ids, err := r.queryIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("match by activities: %w", err)
	}
	return ids, nil
}

// IDsInArea matches organizations having at least one office in a building
// whose coordinates fall within the closed rectangle. Bounds are applied
// exactly as given; an inverted range matches nothing.
func (r *Repo) IDsInArea(ctx context.Context, latMin, latMax, lonMin, lonMax float64) ([]uuid.UUID, error) {
	query := qb.Select("oo.organization_id").
		From("organization_offices oo").
		Join("offices o ON o.id = oo.office_id").
		Join("buildings b ON b.id = o.building_id").
		Where(squirrel.GtOrEq{"b.lat": latMin}).
		Where(squirrel.LtOrEq{"b.lat": latMax}).
		Where(squirrel.GtOrEq{"b.lon": lonMin}).
		Where(squirrel.LtOrEq{"b.lon": lonMax})

	ids, err := r.queryIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("match in area: %w", err)
	}
	return ids, nil
}

// IDsByName matches organizations whose name contains the query substring,
// case-insensitively. LIKE metacharacters in the query are escaped so they
// match literally.
func (r *Repo) IDsByName(ctx context.Context, name string) ([]uuid.UUID, error) {
	query := qb.Select("id").
		From("organizations").
		Where(squirrel.ILike{"name": "%" + escapeLike(name) + "%"})

	ids, err := r.queryIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("match by name: %w", err)
	}
	return ids, nil
}

// ListIDs returns up to limit organization ids ordered by creation time.
func (r *Repo) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	query := qb.Select("id").
		From("organizations").
		OrderBy("created_at", "id").
		Limit(uint64(limit))

	ids, err := r.queryIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return ids, nil
}

// queryIDs executes a single-column uuid select.
func (r *Repo) queryIDs(ctx context.Context, query squirrel.SelectBuilder) ([]uuid.UUID, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// escapeLike escapes LIKE metacharacters with the default backslash escape.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

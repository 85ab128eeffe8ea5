// Package activity implements the Activity repository using PostgreSQL.
// Activities form a self-referential tree bounded to three levels; the
// repository resolves subtrees by iterative frontier expansion instead of a
// recursive CTE so malformed data hits a hard bound instead of the planner.
package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const activityColumns = `id, name, parent_id, level, created_at, updated_at`

const createActivitySQL = `
INSERT INTO activities (name, parent_id, level)
VALUES ($1, $2, $3)
RETURNING ` + activityColumns

const getActivityByIDSQL = `
SELECT ` + activityColumns + `
FROM activities
WHERE id = $1`

const listActivitiesSQL = `
SELECT ` + activityColumns + `
FROM activities
ORDER BY level, name, id`

const childIDsSQL = `
SELECT id
FROM activities
WHERE parent_id = ANY($1::uuid[])`

const deleteActivitySQL = `DELETE FROM activities WHERE id = $1`

// Create inserts a new activity. The caller supplies the level (parent's
// level + 1, roots are 0); the store's check constraint rejects levels
// outside 0..2. Returns domain.ErrAlreadyExists for a duplicate
// (name, parent) pair.
func (r *Repo) Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createActivitySQL, a.Name, a.ParentID, a.Level)

	created, err := scanActivity(row)
	if err != nil {
		return nil, postgres.MapError(err, "activity", uuid.Nil)
	}

	return created, nil
}

// GetByID returns an activity by primary key.
// Returns domain.ErrNotFound if the activity does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getActivityByIDSQL, id)

	a, err := scanActivity(row)
	if err != nil {
		return nil, postgres.MapError(err, "activity", id)
	}

	return a, nil
}

// ListAll returns every activity ordered by level then name, parent links
// included, so callers can assemble trees.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listActivitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	result := []*domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("list activities: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return result, nil
}

// Delete removes an activity. The store restricts the delete while child
// activities or organization links reference it; that surfaces as
// domain.ErrConflict. Returns domain.ErrNotFound if the activity does not
// exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteActivitySQL, id)
	if err != nil {
		return postgres.MapDeleteError(err, "activity", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DescendantIDs resolves the closed subtree of rootID: the root plus every
// activity transitively reachable via parent links. The root is included
// even when it does not exist — the absence then simply matches nothing at
// the join stage.
//
// The frontier is expanded at most domain.MaxActivityDepth times; already
// seen ids are skipped so cyclic data terminates. A frontier still open
// after the cap means the data violates the level bound and yields
// domain.ErrDepthExceeded.
func (r *Repo) DescendantIDs(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	seen := map[uuid.UUID]struct{}{rootID: {}}
	result := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}

	for depth := 0; depth < domain.MaxActivityDepth && len(frontier) > 0; depth++ {
		next, err := r.childIDs(ctx, querier, frontier, seen)
		if err != nil {
			return nil, fmt.Errorf("resolve descendants of %s: %w", rootID, err)
		}
		result = append(result, next...)
		frontier = next
	}

	if len(frontier) > 0 {
		// A subtree deeper than the level bound: malformed data.
		return nil, fmt.Errorf("resolve descendants of %s: %w", rootID, domain.ErrDepthExceeded)
	}

	return result, nil
}

// childIDs returns the unseen children of the given parents and marks them
// seen.
func (r *Repo) childIDs(ctx context.Context, querier postgres.Querier, parents []uuid.UUID, seen map[uuid.UUID]struct{}) ([]uuid.UUID, error) {
	rows, err := querier.Query(ctx, childIDsSQL, parents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var next []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return next, nil
}

// scanActivity scans one row into a domain.Activity.
func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var a domain.Activity
	if err := row.Scan(&a.ID, &a.Name, &a.ParentID, &a.Level, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

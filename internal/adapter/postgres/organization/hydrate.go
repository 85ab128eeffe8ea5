package organization

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/orgdirectory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Batch association fetches
//
// Two-phase strategy: the match query produced candidate ids; each
// association kind is then fetched in one query per kind with
// organization_id = ANY($1), so join fan-out never multiplies organization
// rows.
// ---------------------------------------------------------------------------

const orgsByIDsSQL = `
SELECT id, name, created_at, updated_at
FROM organizations
WHERE id = ANY($1::uuid[])`

const phonesByOrgIDsSQL = `
SELECT organization_id, id, phone_number, created_at, updated_at
FROM organization_phones
WHERE organization_id = ANY($1::uuid[])
ORDER BY organization_id, phone_number`

const officesByOrgIDsSQL = `
SELECT
    oo.organization_id,
    o.id, o.building_id, o.floor, o.unit, o.created_at, o.updated_at,
    b.address    AS b_address,
    b.lat        AS b_lat,
    b.lon        AS b_lon,
    b.created_at AS b_created_at,
    b.updated_at AS b_updated_at
FROM organization_offices oo
JOIN offices o ON o.id = oo.office_id
JOIN buildings b ON b.id = o.building_id
WHERE oo.organization_id = ANY($1::uuid[])
ORDER BY oo.organization_id, o.id`

const activitiesByOrgIDsSQL = `
SELECT oa.organization_id, a.id, a.name, a.parent_id, a.level, a.created_at, a.updated_at
FROM organization_activities oa
JOIN activities a ON a.id = oa.activity_id
WHERE oa.organization_id = ANY($1::uuid[])
ORDER BY oa.organization_id, a.level, a.name`

type orgRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type phoneRow struct {
	OrganizationID uuid.UUID `db:"organization_id"`
	ID             uuid.UUID `db:"id"`
	Number         string    `db:"phone_number"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type officeRow struct {
	OrganizationID uuid.UUID `db:"organization_id"`
	ID             uuid.UUID `db:"id"`
	BuildingID     uuid.UUID `db:"building_id"`
	Floor          *int      `db:"floor"`
	Unit           *string   `db:"unit"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	BuildingAddress   string    `db:"b_address"`
	BuildingLat       float64   `db:"b_lat"`
	BuildingLon       float64   `db:"b_lon"`
	BuildingCreatedAt time.Time `db:"b_created_at"`
	BuildingUpdatedAt time.Time `db:"b_updated_at"`
}

type activityRow struct {
	OrganizationID uuid.UUID  `db:"organization_id"`
	ID             uuid.UUID  `db:"id"`
	Name           string     `db:"name"`
	ParentID       *uuid.UUID `db:"parent_id"`
	Level          int        `db:"level"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// FetchAggregates hydrates the given candidate ids into organization
// aggregates. Candidate ids may repeat (join fan-out); exactly one aggregate
// per distinct id is returned, in first-seen order. Ids without a matching
// organization row are skipped silently.
//
// Phones and offices (with buildings) are always attached; withActivities
// additionally attaches the activity list for detail-shaped results
// (by-activity and by-id).
func (r *Repo) FetchAggregates(ctx context.Context, candidateIDs []uuid.UUID, withActivities bool) ([]*domain.Organization, error) {
	ids := dedupIDs(candidateIDs)
	if len(ids) == 0 {
		return []*domain.Organization{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var orgs []orgRow
	if err := pgxscan.Select(ctx, querier, &orgs, orgsByIDsSQL, ids); err != nil {
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}

	var phones []phoneRow
	if err := pgxscan.Select(ctx, querier, &phones, phonesByOrgIDsSQL, ids); err != nil {
		return nil, fmt.Errorf("fetch phones: %w", err)
	}

	var offices []officeRow
	if err := pgxscan.Select(ctx, querier, &offices, officesByOrgIDsSQL, ids); err != nil {
		return nil, fmt.Errorf("fetch offices: %w", err)
	}

	var activities []activityRow
	if withActivities {
		if err := pgxscan.Select(ctx, querier, &activities, activitiesByOrgIDsSQL, ids); err != nil {
			return nil, fmt.Errorf("fetch activities: %w", err)
		}
	}

	return assembleAggregates(ids, orgs, phones, offices, activities, withActivities), nil
}

// ---------------------------------------------------------------------------
// Assembly (pure)
// ---------------------------------------------------------------------------

// dedupIDs removes duplicate ids preserving first-seen order.
func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// assembleAggregates groups flat association rows under their organizations.
// Output order follows ids; nested collections are deduplicated by their own
// entity ids so that multiple join paths to the same office or activity
// produce one entry.
func assembleAggregates(ids []uuid.UUID, orgs []orgRow, phones []phoneRow, offices []officeRow, activities []activityRow, withActivities bool) []*domain.Organization {
	byID := make(map[uuid.UUID]*domain.Organization, len(orgs))
	for _, row := range orgs {
		org := &domain.Organization{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Phones:    []domain.Phone{},
			Offices:   []domain.Office{},
		}
		if withActivities {
			org.Activities = []domain.Activity{}
		}
		byID[row.ID] = org
	}

	seenPhones := make(map[uuid.UUID]struct{}, len(phones))
	for _, row := range phones {
		org, ok := byID[row.OrganizationID]
		if !ok {
			continue
		}
		if _, dup := seenPhones[row.ID]; dup {
			continue
		}
		seenPhones[row.ID] = struct{}{}
		org.Phones = append(org.Phones, domain.Phone{
			ID:        row.ID,
			Number:    row.Number,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	seenOffices := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(byID))
	for _, row := range offices {
		org, ok := byID[row.OrganizationID]
		if !ok {
			continue
		}
		if seenOffices[row.OrganizationID] == nil {
			seenOffices[row.OrganizationID] = map[uuid.UUID]struct{}{}
		}
		if _, dup := seenOffices[row.OrganizationID][row.ID]; dup {
			continue
		}
		seenOffices[row.OrganizationID][row.ID] = struct{}{}
		org.Offices = append(org.Offices, domain.Office{
			ID:         row.ID,
			BuildingID: row.BuildingID,
			Floor:      row.Floor,
			Unit:       row.Unit,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
			Building: &domain.Building{
				ID:        row.BuildingID,
				Address:   row.BuildingAddress,
				Lat:       row.BuildingLat,
				Lon:       row.BuildingLon,
				CreatedAt: row.BuildingCreatedAt,
				UpdatedAt: row.BuildingUpdatedAt,
			},
		})
	}

	seenActivities := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(byID))
	for _, row := range activities {
		org, ok := byID[row.OrganizationID]
		if !ok {
			continue
		}
		if seenActivities[row.OrganizationID] == nil {
			seenActivities[row.OrganizationID] = map[uuid.UUID]struct{}{}
		}
		if _, dup := seenActivities[row.OrganizationID][row.ID]; dup {
			continue
		}
		seenActivities[row.OrganizationID][row.ID] = struct{}{}
		org.Activities = append(org.Activities, domain.Activity{
			ID:        row.ID,
			Name:      row.Name,
			ParentID:  row.ParentID,
			Level:     row.Level,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	result := make([]*domain.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := byID[id]; ok {
			result = append(result, org)
		}
	}
	return result
}

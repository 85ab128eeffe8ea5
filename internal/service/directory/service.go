// Package directory implements the read side of the organization directory:
// lookup by building, by activity subtree, by geographic area, by name
// substring, and by id. Every operation returns fully hydrated organization
// aggregates, deduplicated across join paths.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

type organizationRepo interface {
	IDsByBuilding(ctx context.Context, buildingID uuid.UUID) ([]uuid.UUID, error)
	IDsByActivities(ctx context.Context, activityIDs []uuid.UUID) ([]uuid.UUID, error)
	IDsInArea(ctx context.Context, latMin, latMax, lonMin, lonMax float64) ([]uuid.UUID, error)
	IDsByName(ctx context.Context, name string) ([]uuid.UUID, error)
	ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	FetchAggregates(ctx context.Context, ids []uuid.UUID, withActivities bool) ([]*domain.Organization, error)
}

type activityResolver interface {
	DescendantIDs(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error)
}

// Service provides the directory query operations.
type Service struct {
	orgs       organizationRepo
	activities activityResolver
	log        *slog.Logger
}

// NewService creates a new directory service.
func NewService(log *slog.Logger, orgs organizationRepo, activities activityResolver) *Service {
	return &Service{
		orgs:       orgs,
		activities: activities,
		log:        log.With("service", "directory"),
	}
}

// defaultListLimit bounds ListOrganizations when the caller passes no limit.
const defaultListLimit = 100

// Package registry implements the write side of the directory: explicit
// insert and delete operations for buildings, offices, organizations, and
// activities, plus junction linking. No entity is materialized implicitly.
package registry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

type buildingRepo interface {
	Create(ctx context.Context, b *domain.Building) (*domain.Building, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
	List(ctx context.Context, limit int) ([]*domain.Building, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type officeRepo interface {
	Create(ctx context.Context, o *domain.Office) (*domain.Office, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Office, error)
	ListByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*domain.Office, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListAll(ctx context.Context) ([]*domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type organizationRepo interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	AddPhone(ctx context.Context, orgID uuid.UUID, number string) (*domain.Phone, error)
	LinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error
	UnlinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error
	LinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error
	UnlinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the directory's write operations.
type Service struct {
	buildings  buildingRepo
	offices    officeRepo
	activities activityRepo
	orgs       organizationRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new registry service.
func NewService(
	log *slog.Logger,
	buildings buildingRepo,
	offices officeRepo,
	activities activityRepo,
	orgs organizationRepo,
	tx txManager,
) *Service {
	return &Service{
		buildings:  buildings,
		offices:    offices,
		activities: activities,
		orgs:       orgs,
		tx:         tx,
		log:        log.With("service", "registry"),
	}
}

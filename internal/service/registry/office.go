package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// CreateOffice inserts a new office. Returns domain.ErrAlreadyExists when
// the (building, floor, unit) triple is taken and domain.ErrNotFound when
// the building does not exist.
func (s *Service) CreateOffice(ctx context.Context, input CreateOfficeInput) (*domain.Office, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.offices.Create(ctx, &domain.Office{
		BuildingID: input.BuildingID,
		Floor:      input.Floor,
		Unit:       input.Unit,
	})
	if err != nil {
		return nil, fmt.Errorf("create office: %w", err)
	}

	s.log.Info("office created",
		slog.String("office_id", created.ID.String()),
		slog.String("building_id", created.BuildingID.String()),
	)
	return created, nil
}

// GetOffice returns an office by id.
func (s *Service) GetOffice(ctx context.Context, id uuid.UUID) (*domain.Office, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("office_id", "required")
	}
	return s.offices.GetByID(ctx, id)
}

// ListOffices returns the offices of a building.
func (s *Service) ListOffices(ctx context.Context, buildingID uuid.UUID) ([]*domain.Office, error) {
	if buildingID == uuid.Nil {
		return nil, domain.NewValidationError("building_id", "required")
	}
	return s.offices.ListByBuilding(ctx, buildingID)
}

// DeleteOffice removes an office and its organization links.
func (s *Service) DeleteOffice(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("office_id", "required")
	}

	if err := s.offices.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete office: %w", err)
	}

	s.log.Info("office deleted", slog.String("office_id", id.String()))
	return nil
}

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// CreateBuilding inserts a new building.
func (s *Service) CreateBuilding(ctx context.Context, input CreateBuildingInput) (*domain.Building, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.buildings.Create(ctx, &domain.Building{
		Address: strings.TrimSpace(input.Address),
		Lat:     input.Lat,
		Lon:     input.Lon,
	})
	if err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}

	s.log.Info("building created", slog.String("building_id", created.ID.String()))
	return created, nil
}

// GetBuilding returns a building by id.
func (s *Service) GetBuilding(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("building_id", "required")
	}
	return s.buildings.GetByID(ctx, id)
}

// ListBuildings returns buildings ordered by creation time.
func (s *Service) ListBuildings(ctx context.Context, limit int) ([]*domain.Building, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.buildings.List(ctx, limit)
}

// DeleteBuilding removes a building; its offices are cascade-deleted.
func (s *Service) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("building_id", "required")
	}

	if err := s.buildings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}

	s.log.Info("building deleted", slog.String("building_id", id.String()))
	return nil
}

package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// GetByBuilding returns organizations having at least one office located in
// the given building. An unknown building id yields an empty list, not an
// error.
func (s *Service) GetByBuilding(ctx context.Context, buildingID uuid.UUID) (*OrganizationList, error) {
	if buildingID == uuid.Nil {
		return nil, domain.NewValidationError("building_id", "required")
	}

	ids, err := s.orgs.IDsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("get by building: %w", err)
	}

	items, err := s.orgs.FetchAggregates(ctx, ids, false)
	if err != nil {
		return nil, fmt.Errorf("get by building: %w", err)
	}

	return newOrganizationList(items), nil
}

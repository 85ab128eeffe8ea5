package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// GetByID returns a single organization aggregate including its activity
// list (detail shape). Returns domain.ErrNotFound when no organization has
// the given id.
func (s *Service) GetByID(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	if orgID == uuid.Nil {
		return nil, domain.NewValidationError("organization_id", "required")
	}

	items, err := s.orgs.FetchAggregates(ctx, []uuid.UUID{orgID}, true)
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("organization %s: %w", orgID, domain.ErrNotFound)
	}

	return items[0], nil
}

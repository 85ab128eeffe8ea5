package directory

import (
	"context"
	"fmt"
)

// ListOrganizations returns up to limit organizations ordered by creation
// time, phones and offices hydrated (list shape). A non-positive limit
// falls back to the default of 100.
func (s *Service) ListOrganizations(ctx context.Context, limit int) (*OrganizationList, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	ids, err := s.orgs.ListIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	items, err := s.orgs.FetchAggregates(ctx, ids, false)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	return newOrganizationList(items), nil
}

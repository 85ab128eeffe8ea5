package directory

import (
	"context"
	"fmt"
)

// SearchByName returns organizations whose name contains the query
// substring, case-insensitively. The query must be at least 2 characters
// long after trimming.
func (s *Service) SearchByName(ctx context.Context, query string) (*OrganizationList, error) {
	trimmed, err := validateNameQuery(query)
	if err != nil {
		return nil, err
	}

	ids, err := s.orgs.IDsByName(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}

	items, err := s.orgs.FetchAggregates(ctx, ids, false)
	if err != nil {
		return nil, fmt.Errorf("search by name: %w", err)
	}

	return newOrganizationList(items), nil
}

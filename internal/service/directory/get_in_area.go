package directory

import (
	"context"
	"fmt"
)

// GetInArea returns organizations having at least one office in a building
// whose coordinates fall within the closed rectangle
// [LatMin,LatMax] × [LonMin,LonMax]. The caller is responsible for
// min <= max; inverted bounds simply match nothing.
func (s *Service) GetInArea(ctx context.Context, input AreaInput) (*OrganizationList, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ids, err := s.orgs.IDsInArea(ctx, input.LatMin, input.LatMax, input.LonMin, input.LonMax)
	if err != nil {
		return nil, fmt.Errorf("get in area: %w", err)
	}

	items, err := s.orgs.FetchAggregates(ctx, ids, false)
	if err != nil {
		return nil, fmt.Errorf("get in area: %w", err)
	}

	return newOrganizationList(items), nil
}

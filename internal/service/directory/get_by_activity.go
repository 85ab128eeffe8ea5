package directory

import (
	"context"
	"fmt"
	"log/slog"
)

// GetByActivity resolves the activity's descendant-inclusive subtree and
// returns organizations whose activity set intersects it. An unknown
// activity id yields an empty list — the absence is discovered at the join
// stage, not pre-validated. Aggregates include the activity list (detail
// shape).
func (s *Service) GetByActivity(ctx context.Context, input GetByActivityInput) (*OrganizationList, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	subtree, err := s.activities.DescendantIDs(ctx, input.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("get by activity: %w", err)
	}

	s.log.Debug("resolved activity subtree",
		slog.String("activity_id", input.ActivityID.String()),
		slog.Int("size", len(subtree)),
	)

	ids, err := s.orgs.IDsByActivities(ctx, subtree)
	if err != nil {
		return nil, fmt.Errorf("get by activity: %w", err)
	}

	items, err := s.orgs.FetchAggregates(ctx, ids, true)
	if err != nil {
		return nil, fmt.Errorf("get by activity: %w", err)
	}

	return newOrganizationList(items), nil
}

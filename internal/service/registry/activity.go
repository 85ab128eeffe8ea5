package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// CreateActivity inserts a new activity. The level is derived from the
// parent (parent level + 1, roots are 0); nesting beyond the fixed bound is
// rejected as a validation error before touching the store.
func (s *Service) CreateActivity(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	level := 0
	if input.ParentID != nil {
		parent, err := s.activities.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("create activity: %w", err)
		}

		level = parent.Level + 1
		if level >= domain.MaxActivityDepth {
			return nil, domain.NewValidationError("parent_id", "activities may be nested at most 3 levels deep")
		}
	}

	created, err := s.activities.Create(ctx, &domain.Activity{
		Name:     strings.TrimSpace(input.Name),
		ParentID: input.ParentID,
		Level:    level,
	})
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	s.log.Info("activity created",
		slog.String("activity_id", created.ID.String()),
		slog.Int("level", created.Level),
	)
	return created, nil
}

// GetActivity returns an activity by id.
func (s *Service) GetActivity(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("activity_id", "required")
	}
	return s.activities.GetByID(ctx, id)
}

// ListActivities returns all activities, parent links included, ordered by
// level then name so callers can assemble trees in one pass.
func (s *Service) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	return s.activities.ListAll(ctx)
}

// DeleteActivity removes an activity. The store restricts the delete while
// child activities or organization links exist; that surfaces as
// domain.ErrConflict and the tree is left untouched.
func (s *Service) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("activity_id", "required")
	}

	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	s.log.Info("activity deleted", slog.String("activity_id", id.String()))
	return nil
}

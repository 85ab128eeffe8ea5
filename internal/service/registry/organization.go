package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// CreateOrganization inserts an organization with its phones and junction
// links in one transaction: either the whole aggregate is created or
// nothing is. Unknown office or activity ids fail the transaction with
// domain.ErrNotFound.
func (s *Service) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Organization
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		org, err := s.orgs.Create(txCtx, &domain.Organization{
			Name: strings.TrimSpace(input.Name),
		})
		if err != nil {
			return err
		}

		for _, number := range input.Phones {
			phone, err := s.orgs.AddPhone(txCtx, org.ID, strings.TrimSpace(number))
			if err != nil {
				return err
			}
			org.Phones = append(org.Phones, *phone)
		}

		for _, officeID := range input.OfficeIDs {
			if err := s.orgs.LinkOffice(txCtx, org.ID, officeID); err != nil {
				return err
			}
		}

		for _, activityID := range input.ActivityIDs {
			if err := s.orgs.LinkActivity(txCtx, org.ID, activityID); err != nil {
				return err
			}
		}

		created = org
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	s.log.Info("organization created",
		slog.String("organization_id", created.ID.String()),
		slog.Int("phones", len(created.Phones)),
		slog.Int("offices", len(input.OfficeIDs)),
		slog.Int("activities", len(input.ActivityIDs)),
	)
	return created, nil
}

// LinkOffice attaches an office to an organization. Idempotent.
func (s *Service) LinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error {
	if orgID == uuid.Nil {
		return domain.NewValidationError("organization_id", "required")
	}
	if officeID == uuid.Nil {
		return domain.NewValidationError("office_id", "required")
	}
	return s.orgs.LinkOffice(ctx, orgID, officeID)
}

// UnlinkOffice detaches an office from an organization.
func (s *Service) UnlinkOffice(ctx context.Context, orgID, officeID uuid.UUID) error {
	if orgID == uuid.Nil {
		return domain.NewValidationError("organization_id", "required")
	}
	if officeID == uuid.Nil {
		return domain.NewValidationError("office_id", "required")
	}
	return s.orgs.UnlinkOffice(ctx, orgID, officeID)
}

// LinkActivity tags an organization with an activity. Idempotent.
func (s *Service) LinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error {
	if orgID == uuid.Nil {
		return domain.NewValidationError("organization_id", "required")
	}
	if activityID == uuid.Nil {
		return domain.NewValidationError("activity_id", "required")
	}
	return s.orgs.LinkActivity(ctx, orgID, activityID)
}

// UnlinkActivity removes an activity tag from an organization.
func (s *Service) UnlinkActivity(ctx context.Context, orgID, activityID uuid.UUID) error {
	if orgID == uuid.Nil {
		return domain.NewValidationError("organization_id", "required")
	}
	if activityID == uuid.Nil {
		return domain.NewValidationError("activity_id", "required")
	}
	return s.orgs.UnlinkActivity(ctx, orgID, activityID)
}

// DeleteOrganization removes an organization; phones and junction rows are
// cascade-deleted.
func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("organization_id", "required")
	}

	if err := s.orgs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}

	s.log.Info("organization deleted", slog.String("organization_id", id.String()))
	return nil
}

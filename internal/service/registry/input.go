package registry

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// CreateBuildingInput holds the parameters for creating a building.
type CreateBuildingInput struct {
	Address string
	Lat     float64
	Lon     float64
}

// Validate checks all fields and collects all errors.
func (i CreateBuildingInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Address) == "" {
		errs = append(errs, domain.FieldError{Field: "address", Message: "required"})
	}
	if i.Lat < -90 || i.Lat > 90 {
		errs = append(errs, domain.FieldError{Field: "lat", Message: "must be within [-90, 90]"})
	}
	if i.Lon < -180 || i.Lon > 180 {
		errs = append(errs, domain.FieldError{Field: "lon", Message: "must be within [-180, 180]"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateOfficeInput holds the parameters for creating an office.
// Floor and Unit are optional.
type CreateOfficeInput struct {
	BuildingID uuid.UUID
	Floor      *int
	Unit       *string
}

// Validate checks all fields and collects all errors.
func (i CreateOfficeInput) Validate() error {
	var errs []domain.FieldError

	if i.BuildingID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "building_id", Message: "required"})
	}
	if i.Unit != nil && len(strings.TrimSpace(*i.Unit)) > 50 {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "max 50 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateOrganizationInput holds the parameters for creating an organization
// together with its phones and junction links in one unit of work.
type CreateOrganizationInput struct {
	Name        string
	Phones      []string
	OfficeIDs   []uuid.UUID
	ActivityIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateOrganizationInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 300 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 300 characters"})
	}

	for _, phone := range i.Phones {
		if strings.TrimSpace(phone) == "" {
			errs = append(errs, domain.FieldError{Field: "phones", Message: "phone numbers must not be empty"})
			break
		}
	}
	for _, id := range i.OfficeIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "office_ids", Message: "ids must not be nil"})
			break
		}
	}
	for _, id := range i.ActivityIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "activity_ids", Message: "ids must not be nil"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateActivityInput holds the parameters for creating an activity.
// A nil ParentID creates a root (level 0) category.
type CreateActivityInput struct {
	Name     string
	ParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateActivityInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.ParentID != nil && *i.ParentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "must not be nil"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

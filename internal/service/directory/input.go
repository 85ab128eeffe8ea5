package directory

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// minNameQueryLen is the minimum length of a trimmed name-search query,
// counted in runes so non-ASCII names are measured as the caller sees them.
const minNameQueryLen = 2

// GetByActivityInput holds the parameters for the activity subtree lookup.
// MaxDepth 0 means the full fixed bound; values above domain.MaxActivityDepth
// are rejected at this boundary.
type GetByActivityInput struct {
	ActivityID uuid.UUID
	MaxDepth   int
}

// Validate checks all fields and collects all errors.
func (i GetByActivityInput) Validate() error {
	var errs []domain.FieldError

	if i.ActivityID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "activity_id", Message: "required"})
	}
	if i.MaxDepth < 0 {
		errs = append(errs, domain.FieldError{Field: "max_depth", Message: "must not be negative"})
	}
	if i.MaxDepth > domain.MaxActivityDepth {
		errs = append(errs, domain.FieldError{Field: "max_depth", Message: "must not exceed 3"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AreaInput holds the closed rectangle for the geographic lookup.
// Bounds are applied exactly as given: min/max are NOT reordered, and an
// inverted range yields an empty result rather than an error.
type AreaInput struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Validate rejects non-finite bounds. Inverted ranges pass by design.
func (i AreaInput) Validate() error {
	var errs []domain.FieldError

	for _, b := range []struct {
		field string
		value float64
	}{
		{"lat_min", i.LatMin},
		{"lat_max", i.LatMax},
		{"lon_min", i.LonMin},
		{"lon_max", i.LonMax},
	} {
		if math.IsNaN(b.value) || math.IsInf(b.value, 0) {
			errs = append(errs, domain.FieldError{Field: b.field, Message: "must be finite"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateNameQuery trims the query and enforces the minimum length.
// Returns the trimmed query.
func validateNameQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minNameQueryLen {
		return "", domain.NewValidationError("query", "minimum length is 2 characters")
	}
	return trimmed, nil
}

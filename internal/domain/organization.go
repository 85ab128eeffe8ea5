package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the root aggregate of the directory. Phones, Offices and
// Activities are populated only when the organization was fetched hydrated;
// Activities is additionally nil on list views that omit it.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Phones     []Phone
	Offices    []Office
	Activities []Activity
}

// Phone is a contact number owned by exactly one organization.
// (organization, number) is unique; phones are cascade-deleted with the
// organization.
type Phone struct {
	ID        uuid.UUID
	Number    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

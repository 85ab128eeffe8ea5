package domain

import (
	"time"

	"github.com/google/uuid"
)

// Building is a physical address that hosts offices. Coordinates are stored
// with 6 fractional digits. Deleting a building cascades to its offices.
type Building struct {
	ID        uuid.UUID
	Address   string
	Lat       float64
	Lon       float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Office is a location inside a building. Floor and Unit are optional;
// the (building, floor, unit) triple is unique. Building is populated only
// when the office was fetched with its building hydrated.
type Office struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	Floor      *int
	Unit       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Building *Building
}

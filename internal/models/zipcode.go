package models

import (
	"time"

	"github.com/google/uuid"
)

// ZipCode is one row of the coordinate lookup table. Rows are created
// at data-load time and never hard-deleted; retired codes are
// deactivated so contractor and referral foreign keys stay intact.
type ZipCode struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	City      string    `json:"city" db:"city"`
	County    *string   `json:"county" db:"county"`
	State     string    `json:"state" db:"state"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

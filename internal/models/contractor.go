package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultServiceRadiusMiles is applied when a contractor registers
// without stating how far they will travel.
const DefaultServiceRadiusMiles = 25

// Contractor is a company in the referral catalog. Active doubles as
// the approval flag: contractors self-register inactive and an admin
// flips Active on approval; it is also toggled off to suspend.
type Contractor struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	CompanyName        string     `json:"company_name" db:"company_name"`
	ContactName        *string    `json:"contact_name" db:"contact_name"`
	Phone              string     `json:"phone" db:"phone"`
	Email              *string    `json:"email" db:"email"`
	Address            *string    `json:"address" db:"address"`
	ZipCode            string     `json:"zip_code" db:"zip_code"`
	ServiceRadiusMiles int        `json:"service_radius_miles" db:"service_radius_miles"`
	ServiceTypes       []string   `json:"service_types" db:"service_types"`
	Rating             float64    `json:"rating" db:"rating"`
	Active             bool       `json:"active" db:"active"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// ContractorWithLocation pairs a contractor with the coordinates of
// its home ZIP, as returned by the catalog join against zip_codes.
type ContractorWithLocation struct {
	Contractor
	City      string  `json:"city" db:"city"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// ContractorMatch is one display-ready row of a matcher result.
// DistanceMiles is rounded for display; the precise value is what gets
// snapshotted onto a referral detail.
type ContractorMatch struct {
	ContractorID  uuid.UUID `json:"contractor_id"`
	CompanyName   string    `json:"company_name"`
	ContactName   *string   `json:"contact_name"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	ZipCode       string    `json:"zip_code"`
	City          string    `json:"city"`
	DistanceMiles float64   `json:"distance_miles"`
	Rating        float64   `json:"rating"`
	ServiceTypes  string    `json:"service_types"`
}

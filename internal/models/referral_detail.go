package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferralDetail is one contractor's slot within a referral.
// DistanceMiles is a snapshot taken at referral-creation time and is
// never recomputed, even if the contractor or ZIP coordinates change
// later. Position is the 1-based rank the matcher assigned.
type ReferralDetail struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	ReferralID         uuid.UUID    `json:"referral_id" db:"referral_id"`
	ContractorID       uuid.UUID    `json:"contractor_id" db:"contractor_id"`
	DistanceMiles      float64      `json:"distance_miles" db:"distance_miles"`
	Position           int          `json:"position" db:"position"`
	Status             DetailStatus `json:"status" db:"status"`
	ContactedDate      *time.Time   `json:"contacted_date" db:"contacted_date"`
	AppointmentDate    *time.Time   `json:"appointment_date" db:"appointment_date"`
	WorkStartDate      *time.Time   `json:"work_start_date" db:"work_start_date"`
	WorkCompletedDate  *time.Time   `json:"work_completed_date" db:"work_completed_date"`
	EstimateAmount     *float64     `json:"estimate_amount" db:"estimate_amount"`
	EstimateNotes      *string      `json:"estimate_notes" db:"estimate_notes"`
	SelectedByCustomer bool         `json:"selected_by_customer" db:"selected_by_customer"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

// ReferralDetailView is a detail joined with the contractor fields a
// status screen needs.
type ReferralDetailView struct {
	ReferralDetail
	CompanyName     string  `json:"company_name"`
	ContractorPhone string  `json:"contractor_phone"`
	ContactName     *string `json:"contact_name"`
}

// DetailStatusUpdate carries the fields a lifecycle update may
// overwrite on one detail. Nil fields are left untouched; the distance
// snapshot is never part of an update.
type DetailStatusUpdate struct {
	Status          DetailStatus `json:"status"`
	ContactedDate   *time.Time   `json:"contacted_date"`
	AppointmentDate *time.Time   `json:"appointment_date"`
	EstimateAmount  *float64     `json:"estimate_amount"`
	EstimateNotes   *string      `json:"estimate_notes"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Referral is one customer service request, fanned out to 1..N
// candidate contractors (the ReferralDetail rows). Customer name and
// phone are nullable so anonymous quick-search referrals are allowed;
// the ZIP is always required.
type Referral struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	CustomerName  *string        `json:"customer_name" db:"customer_name"`
	CustomerPhone *string        `json:"customer_phone" db:"customer_phone"`
	CustomerZip   string         `json:"customer_zip" db:"customer_zip"`
	ServiceType   *string        `json:"service_type" db:"service_type"`
	RequestDate   time.Time      `json:"request_date" db:"request_date"`
	Status        ReferralStatus `json:"status" db:"status"`
	Notes         *string        `json:"notes" db:"notes"`
	CreatedBy     *string        `json:"created_by" db:"created_by"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// CreateReferralInput carries everything needed to open a referral.
// ContractorIDs are in rank order; detail positions follow it 1..N.
// The optional dates apply to every detail (call-center agents often
// record the first contact while creating the referral).
type CreateReferralInput struct {
	CustomerName    *string         `json:"customer_name"`
	CustomerPhone   *string         `json:"customer_phone"`
	CustomerZip     string          `json:"customer_zip"`
	ServiceType     *string         `json:"service_type"`
	ContractorIDs   []uuid.UUID     `json:"contractor_ids"`
	CreatedBy       *string         `json:"created_by"`
	Notes           *string         `json:"notes"`
	InitialStatus   *ReferralStatus `json:"initial_status"`
	ContactedDate   *time.Time      `json:"contacted_date"`
	AppointmentDate *time.Time      `json:"appointment_date"`
}

// ReferralSearchFilter narrows referral listings by status and/or a
// request-date window.
type ReferralSearchFilter struct {
	Status *ReferralStatus `json:"status,omitempty"`
	From   *time.Time      `json:"from,omitempty"`
	To     *time.Time      `json:"to,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// ReferralSnapshot is a referral plus the current state of all of its
// details, as returned by the status lookup.
type ReferralSnapshot struct {
	Referral Referral              `json:"referral"`
	Details  []*ReferralDetailView `json:"details"`
}

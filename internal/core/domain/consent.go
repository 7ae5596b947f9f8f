package domain

import "time"

type ConsentScope string

const (
	ConsentFullAccess    ConsentScope = "FULL_ACCESS"
	ConsentLimitedAccess ConsentScope = "LIMITED_ACCESS"
	ConsentEmergencyOnly ConsentScope = "EMERGENCY_ONLY"
)

// PatientConsent grants a requesting clinic access to records owned by another.
type PatientConsent struct {
	ID                 int          `json:"id"`
	PatientDetailsID   int          `json:"patientDetailsId"`
	RequestingClinicID int          `json:"requestingClinicId"`
	OwnerClinicID      int          `json:"ownerClinicId"`
	ConsentScope       ConsentScope `json:"consentScope"`
	IsApproved         bool         `json:"isApproved"`
	ConsentDate        time.Time    `json:"consentDate"`
	ExpiryDate         *time.Time   `json:"expiryDate,omitempty"`
	ApprovedByUserID   *int         `json:"approvedByUserId,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	IsDeleted          bool         `json:"isDeleted"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// Pending reports whether the consent awaits the patient's decision.
func (c PatientConsent) Pending() bool { return !c.IsApproved && !c.IsDeleted }

// Approved reports whether the consent is currently granted.
func (c PatientConsent) Approved() bool { return c.IsApproved && !c.IsDeleted }

type ConsentRequest struct {
	PatientDetailsID   int          `json:"patientDetailsId" validate:"required"`
	RequestingClinicID int          `json:"requestingClinicId" validate:"required"`
	OwnerClinicID      int          `json:"ownerClinicId" validate:"required"`
	ConsentScope       ConsentScope `json:"consentScope" validate:"required,oneof=FULL_ACCESS LIMITED_ACCESS EMERGENCY_ONLY"`
	ExpiryDate         *time.Time   `json:"expiryDate,omitempty"`
	Notes              string       `json:"notes,omitempty"`
}

type ConsentApproval struct {
	ConsentID  int    `json:"consentId"`
	IsApproved bool   `json:"isApproved"`
	Notes      string `json:"notes,omitempty"`
}

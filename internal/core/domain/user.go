package domain

import "time"

// User is an account managed through the console.
type User struct {
	ID                        *int   `json:"id,omitempty"`
	Name                      string `json:"name"`
	Email                     string `json:"email"`
	Password                  string `json:"password,omitempty"`
	DefaultClinicID           string `json:"defaultClinicId,omitempty"`
	Specialty                 string `json:"specialty,omitempty"`
	ProfessionalLicenseNumber string `json:"professionalLicenseNumber,omitempty"`
	RoleID                    *int   `json:"roleId,omitempty"`
}

// RegisterRequest is the public self-signup payload.
type RegisterRequest struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	AcceptPrivacyTerms bool   `json:"acceptPrivacyTerms"`
}

// Role is a named permission bundle scoped to a clinic.
type Role struct {
	ID          *int       `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Permissions []string   `json:"permissions,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
)

// ClinicRequirement describes whether the session's role needs a clinic scope.
type ClinicRequirement struct {
	Required bool   `json:"required"`
	Exempt   bool   `json:"exempt"`
	Role     string `json:"role"`
}

// ClinicContext resolves the clinic a view should operate on.
type ClinicContext struct {
	current func() *int
	role    func() string
	clinics ports.ClinicService
	log     zerolog.Logger
}

// NewClinicContext wires the store's clinic selector and the role source.
func NewClinicContext(current func() *int, role func() string, clinics ports.ClinicService, log zerolog.Logger) *ClinicContext {
	return &ClinicContext{current: current, role: role, clinics: clinics, log: log}
}

// Resolve returns the active clinic. Without one, clinic-requiring roles fall
// back to the first clinic the backend lists; exempt and unknown roles get
// nil. A failed clinic fetch also yields nil.
func (c *ClinicContext) Resolve(ctx context.Context) *int {
	if id := c.current(); id != nil && *id != 0 {
		return id
	}

	role := c.role()
	if !domain.RequiresClinic(role) {
		return nil
	}

	clinics, err := c.clinics.List(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("role", role).Msg("could not fetch clinics")
		return nil
	}
	if len(clinics) == 0 {
		return nil
	}
	return clinics[0].ID
}

func (c *ClinicContext) RequirementStatus() ClinicRequirement {
	role := c.role()
	return ClinicRequirement{
		Required: domain.RequiresClinic(role),
		Exempt:   domain.ClinicExempt(role),
		Role:     role,
	}
}

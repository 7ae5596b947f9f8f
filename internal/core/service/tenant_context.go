package service

import (
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// TokenSource returns the current bearer token, or "".
type TokenSource func() string

// Tenant is the tenant scope carried by the current token.
type Tenant struct {
	AccountID string   `json:"accountId,omitempty"`
	ClinicID  *int     `json:"clinicId,omitempty"`
	ClinicIDs []int    `json:"clinicIds"`
	UserID    string   `json:"userId,omitempty"`
	Role      string   `json:"role,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// TenantContext derives tenant scope from the current token on each call.
type TenantContext struct {
	token TokenSource
	log   zerolog.Logger
}

func NewTenantContext(token TokenSource, log zerolog.Logger) *TenantContext {
	return &TenantContext{token: token, log: log}
}

// Current returns the tenant scope, or false when there is no usable token.
// When the token names no primary clinic the first of clinicIds is used.
func (t *TenantContext) Current() (Tenant, bool) {
	claims, err := DecodeClaims(t.token())
	if err != nil {
		if t.token() != "" {
			t.log.Warn().Err(err).Msg("failed to decode tenant claims")
		}
		return Tenant{}, false
	}

	ten := Tenant{
		AccountID: claims.AccountID,
		ClinicIDs: claims.ClinicIDs,
		UserID:    claims.UserID,
		Role:      claims.Role,
		Roles:     claims.Roles,
	}
	if ten.ClinicIDs == nil {
		ten.ClinicIDs = []int{}
	}
	if id, err := strconv.Atoi(claims.ClinicID); err == nil && id != 0 {
		ten.ClinicID = &id
	} else if len(ten.ClinicIDs) > 0 {
		ten.ClinicID = domain.Ptr(ten.ClinicIDs[0])
	}
	return ten, true
}

// HasClinicAccess reports whether the session may act on clinicID. A token
// without a clinicIds list is not clinic-restricted.
func (t *TenantContext) HasClinicAccess(clinicID int) bool {
	ten, ok := t.Current()
	if !ok {
		return false
	}
	return len(ten.ClinicIDs) == 0 || slices.Contains(ten.ClinicIDs, clinicID)
}

// Role returns the role claim, or "".
func (t *TenantContext) Role() string {
	ten, _ := t.Current()
	return ten.Role
}

// Headers returns the values for the tenant request headers.
func (t *TenantContext) Headers() (accountID, clinicID, userID string) {
	ten, ok := t.Current()
	if !ok {
		return "", "", ""
	}
	if ten.ClinicID != nil {
		clinicID = strconv.Itoa(*ten.ClinicID)
	}
	return ten.AccountID, clinicID, ten.UserID
}

package service

import (
	"time"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// PermissionService answers capability questions for the current token.
// The effective set is the token's explicit permissions plus those derived
// from its roles claim.
type PermissionService struct {
	token  TokenSource
	tenant *TenantContext
}

func NewPermissionService(token TokenSource, tenant *TenantContext) *PermissionService {
	return &PermissionService{token: token, tenant: tenant}
}

// Permissions returns the effective permission set.
func (s *PermissionService) Permissions() map[domain.Permission]struct{} {
	set := make(map[domain.Permission]struct{})
	claims, err := DecodeClaims(s.token())
	if err != nil {
		return set
	}
	for _, p := range claims.Permissions {
		set[domain.Permission(p)] = struct{}{}
	}
	for _, p := range domain.PermissionsForRoles(claims.Roles) {
		set[p] = struct{}{}
	}
	return set
}

func (s *PermissionService) HasPermission(p domain.Permission) bool {
	_, ok := s.Permissions()[p]
	return ok
}

func (s *PermissionService) HasAll(ps ...domain.Permission) bool {
	set := s.Permissions()
	for _, p := range ps {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

func (s *PermissionService) HasAny(ps ...domain.Permission) bool {
	set := s.Permissions()
	for _, p := range ps {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// CanViewAuditLogs also checks clinic access when clinicID is non-nil and non-zero.
func (s *PermissionService) CanViewAuditLogs(clinicID *int) bool {
	if !s.HasPermission(domain.PermViewAuditLogs) {
		return false
	}
	if clinicID != nil && *clinicID != 0 {
		return s.tenant.HasClinicAccess(*clinicID)
	}
	return true
}

func (s *PermissionService) CanManageAuditLogs() bool {
	return s.HasPermission(domain.PermManageAuditLogs)
}

func (s *PermissionService) CanExportAuditLogs() bool {
	return s.HasPermission(domain.PermExportAuditLogs)
}

func (s *PermissionService) CanGenerateAuditReports() bool {
	return s.HasPermission(domain.PermGenerateAuditReports)
}

func (s *PermissionService) CanViewConsent() bool {
	return s.HasPermission(domain.PermViewConsent)
}

func (s *PermissionService) CanApproveConsent() bool {
	return s.HasPermission(domain.PermApproveConsent)
}

func (s *PermissionService) CanRevokeConsent() bool {
	return s.HasPermission(domain.PermRevokeConsent)
}

func (s *PermissionService) CanViewMedicalHistory() bool {
	return s.HasPermission(domain.PermViewMedicalHistory)
}

func (s *PermissionService) CanManageMedicalHistory() bool {
	return s.HasPermission(domain.PermManageMedicalHistory)
}

// IsTokenExpired reports whether the current token's exp claim has passed.
// A missing or undecodable token counts as expired.
func (s *PermissionService) IsTokenExpired(now time.Time) bool {
	claims, err := DecodeClaims(s.token())
	if err != nil {
		return true
	}
	return claims.Expired(now)
}

// Package guard decides whether a console route may be entered. Guards read
// the session synchronously and never block.
package guard

import (
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/api/metrics"
	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
)

const (
	RouteLogin        = "/login"
	RouteUnauthorized = "/unauthorized"
)

// RouteSnapshot is the navigation being attempted.
type RouteSnapshot struct {
	URL    string
	Params map[string]string
}

type Decision struct {
	Allow     bool   `json:"allow"`
	Redirect  string `json:"redirect,omitempty"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

// Location is the redirect target with the returnUrl query attached.
func (d Decision) Location() string {
	if d.Allow || d.Redirect == "" {
		return ""
	}
	if d.ReturnURL == "" {
		return d.Redirect
	}
	return d.Redirect + "?" + url.Values{"returnUrl": {d.ReturnURL}}.Encode()
}

type Guard interface {
	Name() string
	CanActivate(route RouteSnapshot) Decision
}

// Check runs guards in order and returns the first denial.
func Check(route RouteSnapshot, guards ...Guard) Decision {
	for _, g := range guards {
		if d := g.CanActivate(route); !d.Allow {
			return d
		}
	}
	return Decision{Allow: true}
}

func deny(log zerolog.Logger, guard, redirect string, route RouteSnapshot, reason string) Decision {
	metrics.GuardDenialsTotal.WithLabelValues(guard, redirect).Inc()
	log.Warn().Str("guard", guard).Str("url", route.URL).Str("redirect", redirect).Msg(reason)
	return Decision{Redirect: redirect, ReturnURL: route.URL}
}

// AuthGuard admits any session holding a token.
type AuthGuard struct {
	session *store.Store[domain.AuthState]
	log     zerolog.Logger
}

func NewAuthGuard(session *store.Store[domain.AuthState], log zerolog.Logger) *AuthGuard {
	return &AuthGuard{session: session, log: log}
}

func (g *AuthGuard) Name() string { return "auth" }

func (g *AuthGuard) CanActivate(route RouteSnapshot) Decision {
	if store.Select(g.session, auth.SelectIsLoggedIn) {
		return Decision{Allow: true}
	}
	return deny(g.log, g.Name(), RouteLogin, route, "user is not logged in")
}

// AuditAccessGuard requires VIEW_AUDIT_LOGS and, when the route carries a
// clinicId param, access to that clinic.
type AuditAccessGuard struct {
	perms  *service.PermissionService
	tenant *service.TenantContext
	log    zerolog.Logger
}

func NewAuditAccessGuard(perms *service.PermissionService, tenant *service.TenantContext, log zerolog.Logger) *AuditAccessGuard {
	return &AuditAccessGuard{perms: perms, tenant: tenant, log: log}
}

func (g *AuditAccessGuard) Name() string { return "audit_access" }

func (g *AuditAccessGuard) CanActivate(route RouteSnapshot) Decision {
	if !g.perms.CanViewAuditLogs(nil) {
		return deny(g.log, g.Name(), RouteUnauthorized, route, "no permission to view audit logs")
	}
	raw := route.Params["clinicId"]
	if raw == "" {
		return Decision{Allow: true}
	}
	id, err := strconv.Atoi(raw)
	if err != nil || !g.tenant.HasClinicAccess(id) {
		return deny(g.log, g.Name(), RouteUnauthorized, route, "no access to clinic "+raw)
	}
	return Decision{Allow: true}
}

// AuditAdminGuard requires any admin-level audit permission.
type AuditAdminGuard struct {
	perms *service.PermissionService
	log   zerolog.Logger
}

func NewAuditAdminGuard(perms *service.PermissionService, log zerolog.Logger) *AuditAdminGuard {
	return &AuditAdminGuard{perms: perms, log: log}
}

func (g *AuditAdminGuard) Name() string { return "audit_admin" }

func (g *AuditAdminGuard) CanActivate(route RouteSnapshot) Decision {
	if g.perms.HasAny(domain.PermManageAuditLogs, domain.PermGenerateAuditReports, domain.PermExportAuditLogs) {
		return Decision{Allow: true}
	}
	return deny(g.log, g.Name(), RouteUnauthorized, route, "no admin permission for audit operations")
}

type ConsentAccessGuard struct {
	perms *service.PermissionService
	log   zerolog.Logger
}

func NewConsentAccessGuard(perms *service.PermissionService, log zerolog.Logger) *ConsentAccessGuard {
	return &ConsentAccessGuard{perms: perms, log: log}
}

func (g *ConsentAccessGuard) Name() string { return "consent_access" }

func (g *ConsentAccessGuard) CanActivate(route RouteSnapshot) Decision {
	if g.perms.CanViewConsent() {
		return Decision{Allow: true}
	}
	return deny(g.log, g.Name(), RouteUnauthorized, route, "no permission to view consent")
}

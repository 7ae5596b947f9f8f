package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/store"
)

// Context keys set by Session.
const (
	CtxSession = "session"
	CtxRole    = "role"
)

// Session snapshots the auth state once per request and exposes it, with the
// role decoded from its token, to handlers.
func Session(s *store.Store[domain.AuthState], tenant *service.TenantContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CtxSession, s.State())
			c.Set(CtxRole, tenant.Role())
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/guard"
)

// Guard runs guards before the handler. A denial answers 303 See Other to the
// guard's redirect, carrying the attempted URL as returnUrl.
func Guard(guards ...guard.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := guard.RouteSnapshot{URL: c.Request().RequestURI, Params: routeParams(c)}
			if d := guard.Check(route, guards...); !d.Allow {
				return c.Redirect(http.StatusSeeOther, d.Location())
			}
			return next(c)
		}
	}
}

func routeParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = c.Param(n)
	}
	return out
}

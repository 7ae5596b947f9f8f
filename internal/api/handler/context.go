package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/api/middleware"
	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// ctxSession returns the auth state captured by the Session middleware.
// Handlers behind AuthGuard always see a logged-in state; anything else is
// ErrNotLoggedIn.
func ctxSession(c echo.Context) (domain.AuthState, error) {
	s, ok := c.Get(middleware.CtxSession).(domain.AuthState)
	if !ok || !s.LoggedIn() {
		return domain.AuthState{}, domain.ErrNotLoggedIn
	}
	return s, nil
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return v, nil
}

// badGateway reports an effect failure captured in store state.
func badGateway(msg *string) error {
	return echo.NewHTTPError(http.StatusBadGateway, *msg)
}

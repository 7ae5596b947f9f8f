package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
)

// Locator reports where the console currently is.
type Locator interface {
	Current() string
}

type AuthHandler struct {
	session *store.Store[domain.AuthState]
	auth    ports.AuthService
	tenant  *service.TenantContext
	clinic  *service.ClinicContext
	loc     Locator
}

func NewAuthHandler(session *store.Store[domain.AuthState], authService ports.AuthService, tenant *service.TenantContext, clinic *service.ClinicContext, loc Locator) *AuthHandler {
	return &AuthHandler{session: session, auth: authService, tenant: tenant, clinic: clinic, loc: loc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Auth     domain.AuthState          `json:"auth"`
	Phase    domain.SessionPhase       `json:"phase"`
	LoggedIn bool                      `json:"loggedIn"`
	Tenant   *service.Tenant           `json:"tenant,omitempty"`
	Clinic   service.ClinicRequirement `json:"clinic"`
	Location string                    `json:"location"`
	Redirect string                    `json:"redirect,omitempty"`
}

func (h *AuthHandler) snapshot() sessionResponse {
	st := h.session.State()
	resp := sessionResponse{
		Auth:     st,
		Phase:    st.Phase(),
		LoggedIn: st.LoggedIn(),
		Clinic:   h.clinic.RequirementStatus(),
		Location: h.loc.Current(),
	}
	if t, ok := h.tenant.Current(); ok {
		resp.Tenant = &t
	}
	return resp
}

// Login runs the login flow through the session store and waits for it to
// settle, profile load and clinic resolution included.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body       body      loginRequest  true   "Credentials"
// @Param        returnUrl  query     string        false  "Location to continue to"
// @Success      200        {object}  sessionResponse
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.session.Dispatch(auth.Login{Email: req.Email, Password: req.Password})
	if err := h.session.Settle(c.Request().Context()); err != nil {
		return err
	}

	resp := h.snapshot()
	if !resp.LoggedIn || (resp.Auth.Error != nil && *resp.Auth.Error == auth.MsgInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, auth.MsgInvalidCredentials)
	}
	resp.Redirect = auth.RouteHome
	if ret := c.QueryParam("returnUrl"); strings.HasPrefix(ret, "/") && !strings.HasPrefix(ret, "//") {
		resp.Redirect = ret
	}
	return c.JSON(http.StatusOK, resp)
}

// Signup registers a new account. The caller logs in afterwards.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req domain.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.auth.Register(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"redirect": auth.RouteLogin})
}

// Logout clears the session. Logging out twice is harmless.
//
// @Summary  Logout
// @Tags     auth
// @Success  204
// @Router   /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Dispatch(auth.Logout{})
	if err := h.session.Settle(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session describes the current auth state.
//
// @Summary  Current session
// @Tags     auth
// @Produce  json
// @Success  200  {object}  sessionResponse
// @Router   /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// LoginPage is where AuthGuard sends anonymous visitors.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"page":      "login",
		"returnUrl": c.QueryParam("returnUrl"),
	})
}

func (h *AuthHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error":     "you do not have permission to view this page",
		"returnUrl": c.QueryParam("returnUrl"),
	})
}

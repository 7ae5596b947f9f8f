package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/forms"
	backend "github.com/clinicdesk/clinic-console/internal/infrastructure/api"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler renders every error as {"error": msg}. Backend statuses
// below 500 pass through; backend failures become 502.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: domain.ErrInvalidForm.Error(), Fields: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidForm):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotLoggedIn), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "not authenticated"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUnknownEntity):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "resource not found"}
	}

	if status := backend.StatusOf(err); status != 0 {
		log.Warn().Err(err).Int("backend_status", status).Str("path", c.Path()).Msg("backend request failed")
		if status < http.StatusInternalServerError {
			return status, errorResponse{Error: http.StatusText(status)}
		}
		return http.StatusBadGateway, errorResponse{Error: "backend unavailable"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

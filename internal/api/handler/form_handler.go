package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/forms"
)

type FormHandler struct {
	builder *forms.Builder
}

func NewFormHandler(builder *forms.Builder) *FormHandler {
	return &FormHandler{builder: builder}
}

type formResponse struct {
	EntityType string            `json:"entityType"`
	Fields     []forms.Field     `json:"fields"`
	Errors     map[string]string `json:"errors"`
	Valid      bool              `json:"valid"`
}

type submitRequest struct {
	Data   map[string]any `json:"data"`
	Fields []forms.Field  `json:"fields"`
	Values map[string]any `json:"values"`
	Create bool           `json:"create"`
}

type submitResponse struct {
	Values map[string]any `json:"values"`
}

func (h *FormHandler) request(c echo.Context) forms.Request {
	req := forms.Request{EntityType: c.Param("entityType")}
	if s, err := ctxSession(c); err == nil {
		req.ClinicID = s.ClinicID
	}
	return req
}

// Build returns the field set for an entity type.
//
// @Summary   Build an entity form
// @Tags      forms
// @Produce   json
// @Param     entityType  path      string  true   "patient, appointment, clinic, user or role"
// @Param     create      query     bool    false  "Build the creation variant"
// @Success   200         {object}  formResponse
// @Failure   404         {object}  map[string]string
// @Router    /forms/{entityType} [get]
func (h *FormHandler) Build(c echo.Context) error {
	req := h.request(c)
	req.Create, _ = strconv.ParseBool(c.QueryParam("create"))

	form, err := h.builder.Build(c.Request().Context(), req)
	if err != nil {
		return err
	}
	errs := form.Errors()
	return c.JSON(http.StatusOK, formResponse{
		EntityType: req.EntityType,
		Fields:     form.Fields,
		Errors:     errs,
		Valid:      len(errs) == 0,
	})
}

// Submit builds the form, applies the posted values and returns the raw
// values when every enabled field passes.
//
// @Summary   Submit an entity form
// @Tags      forms
// @Accept    json
// @Produce   json
// @Param     entityType  path      string         true  "Entity type"
// @Param     body        body      submitRequest  true  "Seed data and edited values"
// @Success   200         {object}  submitResponse
// @Failure   422         {object}  map[string]string
// @Router    /forms/{entityType} [post]
func (h *FormHandler) Submit(c echo.Context) error {
	var in submitRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req := h.request(c)
	req.Data, req.Fields, req.Create = in.Data, in.Fields, in.Create

	form, err := h.builder.Build(c.Request().Context(), req)
	if err != nil {
		return err
	}
	for k, v := range in.Values {
		if err := form.Set(k, v); err != nil {
			return err
		}
	}
	values, err := form.Submit()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, submitResponse{Values: values})
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/audit"
	"github.com/clinicdesk/clinic-console/internal/store/consent"
)

// AuditHandler drives the audit and consent stores. Each request dispatches
// and waits for the store's effects before answering.
type AuditHandler struct {
	audit    *store.Store[audit.State]
	consents *store.Store[consent.State]
	perms    *service.PermissionService
}

func NewAuditHandler(auditStore *store.Store[audit.State], consents *store.Store[consent.State], perms *service.PermissionService) *AuditHandler {
	return &AuditHandler{audit: auditStore, consents: consents, perms: perms}
}

type auditLogsResponse struct {
	Logs       []domain.AuditLog     `json:"logs"`
	Pagination domain.Pagination     `json:"pagination"`
	Filter     domain.AuditLogFilter `json:"filter"`
}

type consentsResponse struct {
	Consents []domain.PatientConsent `json:"consents"`
	Pending  []domain.PatientConsent `json:"pending"`
	Approved []domain.PatientConsent `json:"approved"`
	Revoked  []domain.PatientConsent `json:"revoked"`
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

// filterFromQuery reads an audit filter from the query string. A clinicId
// path param wins over the query.
func filterFromQuery(c echo.Context) (domain.AuditLogFilter, error) {
	f := domain.AuditLogFilter{Page: domain.DefaultAuditPage, PageSize: domain.DefaultAuditPageSize}
	var userID, patientID, clinicID int
	var hasConsent bool
	var from, to time.Time

	err := echo.QueryParamsBinder(c).
		Int("page", &f.Page).
		Int("pageSize", &f.PageSize).
		Int("userId", &userID).
		Int("patientId", &patientID).
		Int("clinicId", &clinicID).
		Bool("hasConsent", &hasConsent).
		String("searchTerm", &f.SearchTerm).
		Time("dateFrom", &from, time.RFC3339).
		Time("dateTo", &to, time.RFC3339).
		BindError()
	if err == nil && c.Param("clinicId") != "" {
		err = echo.PathParamsBinder(c).Int("clinicId", &clinicID).BindError()
	}
	if err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if c.QueryParam("userId") != "" {
		f.UserID = &userID
	}
	if c.QueryParam("patientId") != "" {
		f.PatientID = &patientID
	}
	if c.QueryParam("clinicId") != "" || c.Param("clinicId") != "" {
		f.ClinicID = &clinicID
	}
	if c.QueryParam("hasConsent") != "" {
		f.HasConsent = &hasConsent
	}
	if !from.IsZero() {
		f.DateFrom = &from
	}
	if !to.IsZero() {
		f.DateTo = &to
	}
	return f, nil
}

// ListAuditLogs
//
// @Summary   List audit logs
// @Tags      audit
// @Produce   json
// @Param     clinicId    path      int     false  "Clinic scope"
// @Param     page        query     int     false  "Page (1-based)"
// @Param     pageSize    query     int     false  "Page size"
// @Param     searchTerm  query     string  false  "Free text"
// @Success   200         {object}  auditLogsResponse
// @Router    /audit-logs/{clinicId} [get]
func (h *AuditHandler) ListAuditLogs(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	h.audit.Dispatch(audit.Load{Filter: &f})
	if err := h.audit.Settle(c.Request().Context()); err != nil {
		return err
	}
	st := h.audit.State()
	if st.Error != nil {
		return badGateway(st.Error)
	}
	return c.JSON(http.StatusOK, auditLogsResponse{Logs: st.Logs, Pagination: st.Pagination, Filter: st.Filter})
}

func (h *AuditHandler) GetAuditLog(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	h.audit.Dispatch(audit.LoadDetail{ID: id})
	if err := h.audit.Settle(c.Request().Context()); err != nil {
		return err
	}
	st := h.audit.State()
	if st.Error != nil {
		return badGateway(st.Error)
	}
	return c.JSON(http.StatusOK, st.Selected)
}

func (h *AuditHandler) Report(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	h.audit.Dispatch(audit.GenerateReport{Filter: f})
	if err := h.audit.Settle(c.Request().Context()); err != nil {
		return err
	}
	st := h.audit.State()
	if st.ReportError != nil {
		return badGateway(st.ReportError)
	}
	return c.JSON(http.StatusOK, st.Report)
}

// Export downloads the filtered logs. format defaults to csv.
//
// @Summary   Export audit logs
// @Tags      audit
// @Produce   octet-stream
// @Param     format  query  string  false  "Export format"
// @Success   200
// @Router    /audit-logs/export [get]
func (h *AuditHandler) Export(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	h.audit.Dispatch(audit.Export{Filter: f, Format: format})
	if err := h.audit.Settle(c.Request().Context()); err != nil {
		return err
	}
	st := h.audit.State()
	if st.Error != nil {
		return badGateway(st.Error)
	}

	contentType := echo.MIMEOctetStream
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="audit-logs.`+format+`"`)
	return c.Blob(http.StatusOK, contentType, st.Export)
}

func (h *AuditHandler) consentList(c echo.Context, status int) error {
	st := h.consents.State()
	if st.Error != nil {
		return badGateway(st.Error)
	}
	return c.JSON(status, consentsResponse{
		Consents: st.Consents,
		Pending:  st.Pending,
		Approved: st.Approved,
		Revoked:  st.Revoked,
	})
}

// ListConsents
//
// @Summary   List a patient's consents
// @Tags      consent
// @Produce   json
// @Param     patientId  path      int  true  "Patient"
// @Success   200        {object}  consentsResponse
// @Router    /consents/{patientId} [get]
func (h *AuditHandler) ListConsents(c echo.Context) error {
	patientID, err := intParam(c, "patientId")
	if err != nil {
		return err
	}
	h.consents.Dispatch(consent.Load{PatientID: patientID})
	if err := h.consents.Settle(c.Request().Context()); err != nil {
		return err
	}
	return h.consentList(c, http.StatusOK)
}

func (h *AuditHandler) RequestConsent(c echo.Context) error {
	patientID, err := intParam(c, "patientId")
	if err != nil {
		return err
	}
	var req domain.ConsentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.PatientDetailsID = patientID
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.submit(c, consent.Request{Request: req}, http.StatusCreated)
}

func (h *AuditHandler) ApproveConsent(c echo.Context) error {
	if !h.perms.CanApproveConsent() {
		return domain.ErrForbidden
	}
	id, err := intParam(c, "consentId")
	if err != nil {
		return err
	}
	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	approval := domain.ConsentApproval{ConsentID: id, IsApproved: true, Notes: req.Notes}
	return h.submit(c, consent.Approve{Approval: approval}, http.StatusOK)
}

func (h *AuditHandler) RejectConsent(c echo.Context) error {
	if !h.perms.CanApproveConsent() {
		return domain.ErrForbidden
	}
	id, err := intParam(c, "consentId")
	if err != nil {
		return err
	}
	return h.submit(c, consent.Reject{ConsentID: id}, http.StatusOK)
}

func (h *AuditHandler) RevokeConsent(c echo.Context) error {
	if !h.perms.CanRevokeConsent() {
		return domain.ErrForbidden
	}
	id, err := intParam(c, "consentId")
	if err != nil {
		return err
	}
	return h.submit(c, consent.Revoke{ConsentID: id}, http.StatusOK)
}

func (h *AuditHandler) submit(c echo.Context, action store.Action, status int) error {
	h.consents.Dispatch(action)
	if err := h.consents.Settle(c.Request().Context()); err != nil {
		return err
	}
	if st := h.consents.State(); st.SubmissionError != nil {
		return badGateway(st.SubmissionError)
	}
	return h.consentList(c, status)
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clinicdesk/clinic-console/docs"
	"github.com/clinicdesk/clinic-console/internal/api/handler"
	"github.com/clinicdesk/clinic-console/internal/api/middleware"
	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/guard"
	"github.com/clinicdesk/clinic-console/internal/store"
)

// Guards are the route guards the console applies.
type Guards struct {
	Auth          guard.Guard
	AuditAccess   guard.Guard
	AuditAdmin    guard.Guard
	ConsentAccess guard.Guard
}

// Deps is everything NewRouter wires.
type Deps struct {
	Session  *store.Store[domain.AuthState]
	Tenant   *service.TenantContext
	Guards   Guards
	Auth     *handler.AuthHandler
	Entities *handler.EntityHandler
	Forms    *handler.FormHandler
	Audit    *handler.AuditHandler
	Health   *handler.HealthHandler
	Log      zerolog.Logger
}

// NewRouter builds the console server.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Request metrics live on their own registry so several routers can
	// coexist in one process; /metrics gathers both.
	reg := prometheus.NewRegistry()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: reg,
	}))
	e.Use(middleware.Session(d.Session, d.Tenant))

	// --- Public ---
	e.GET("/login", d.Auth.LoginPage)
	e.POST("/login", d.Auth.Login)
	e.POST("/signup", d.Auth.Signup)
	e.POST("/logout", d.Auth.Logout)
	e.GET("/session", d.Auth.Session)
	e.GET("/unauthorized", d.Auth.Unauthorized)
	e.GET("/validate-prescription/:code", d.Entities.ValidatePrescription)

	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Logged in ---
	authed := middleware.Guard(d.Guards.Auth)

	e.GET("/appointments", d.Entities.ListAppointments, authed)
	e.GET("/patients", d.Entities.ListPatients, authed)
	e.PUT("/patients/:id", d.Entities.UpdatePatient, authed)
	e.DELETE("/patients/:id", d.Entities.DeletePatient, authed)
	e.GET("/patients/:id/history", d.Entities.PatientHistory, authed)
	e.GET("/clinics", d.Entities.ListClinics, authed)
	e.POST("/clinics", d.Entities.CreateClinic, authed)
	e.GET("/users", d.Entities.ListUsers, authed)
	e.GET("/roles", d.Entities.ListRoles, authed)
	e.GET("/prescriptions/:id", d.Entities.GetPrescription, authed)
	e.GET("/prescriptions/:id/qr", d.Entities.PrescriptionQR, authed)

	e.GET("/forms/:entityType", d.Forms.Build, authed)
	e.POST("/forms/:entityType", d.Forms.Submit, authed)

	// --- Audit and consent ---
	auditView := middleware.Guard(d.Guards.Auth, d.Guards.AuditAccess)
	auditAdmin := middleware.Guard(d.Guards.Auth, d.Guards.AuditAdmin)
	consentView := middleware.Guard(d.Guards.Auth, d.Guards.ConsentAccess)

	e.GET("/audit-logs", d.Audit.ListAuditLogs, auditView)
	e.GET("/audit-logs/:clinicId", d.Audit.ListAuditLogs, auditView)
	e.GET("/audit-logs/entry/:id", d.Audit.GetAuditLog, auditView)
	e.GET("/audit-logs/export", d.Audit.Export, auditAdmin)
	e.GET("/audit-logs/report", d.Audit.Report, auditAdmin)

	e.GET("/consents/:patientId", d.Audit.ListConsents, consentView)
	e.POST("/consents/:patientId", d.Audit.RequestConsent, consentView)
	e.PUT("/consents/:patientId/:consentId/approve", d.Audit.ApproveConsent, consentView)
	e.PUT("/consents/:patientId/:consentId/reject", d.Audit.RejectConsent, consentView)
	e.DELETE("/consents/:patientId/:consentId", d.Audit.RevokeConsent, consentView)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

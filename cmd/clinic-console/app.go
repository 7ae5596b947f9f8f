package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/forms"
	"github.com/clinicdesk/clinic-console/internal/guard"
	backend "github.com/clinicdesk/clinic-console/internal/infrastructure/api"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/session"
	"github.com/clinicdesk/clinic-console/internal/pkg/config"
	"github.com/clinicdesk/clinic-console/internal/router"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/audit"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
	"github.com/clinicdesk/clinic-console/internal/store/consent"
	"github.com/clinicdesk/clinic-console/pkg/logger"
)

// app is the wired console shared by every command.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	storage ports.SessionStorage
	close   func() error

	session *store.Store[domain.AuthState]
	nav     *router.History
	tenant  *service.TenantContext
	perms   *service.PermissionService

	authSvc   *service.AuthService
	clinics   *service.ClinicService
	clinicCtx *service.ClinicContext
	entities  entityServices
	builder   *forms.Builder

	audit    *store.Store[audit.State]
	consents *store.Store[consent.State]
}

type entityServices struct {
	patients      *service.PatientService
	appointments  *service.AppointmentService
	users         *service.UserService
	roles         *service.RoleService
	prescriptions *service.PrescriptionService
	history       *service.MedicalHistoryService
}

// bootstrap restores the persisted session and wires the stores. ctx bounds
// the effect workers.
func bootstrap(ctx context.Context) (*app, error) {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "clinic-console"})
	log := logger.For("bootstrap")

	storage, closeStorage, err := session.Open(ctx, session.Options{
		Backend:   cfg.Session.Backend,
		BoltPath:  cfg.Session.BoltPath,
		RedisAddr: cfg.Redis.Addr,
		RedisDB:   cfg.Redis.DB,
		MongoURI:  cfg.Mongo.URI,
		MongoDB:   cfg.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}
	log.Info().Str("backend", cfg.Session.Backend).Msg("session storage ready")

	a := &app{cfg: cfg, log: log, storage: storage, close: closeStorage}
	persister := session.NewPersister(storage, cfg.Session.Prefix, logger.For("session"))

	dispatcher := queue.NewDispatcher(cfg.EffectWorkers, logger.For("effects"))
	dispatcher.Start(ctx)

	a.session = store.New(domain.InitialAuthState(), auth.Reduce, dispatcher, logger.For("auth"))
	a.nav = router.NewHistory(auth.RouteHome, logger.For("router"))

	token := func() string { return store.Select(a.session, auth.SelectToken) }
	a.tenant = service.NewTenantContext(token, logger.For("tenant"))
	a.perms = service.NewPermissionService(token, a.tenant)

	transport := backend.Chain(http.DefaultTransport,
		backend.RequestID(),
		backend.BearerAuth(token),
		backend.AuditContext(a.tenant.Headers),
		backend.SessionErrors(
			func() { a.session.Dispatch(auth.Logout{}) },
			func() { a.nav.Navigate(guard.RouteUnauthorized) },
		),
		backend.Instrument(),
	)
	client := backend.NewClient(cfg.APIBaseURL, transport, logger.For("backend"))

	a.authSvc = service.NewAuthService(client)
	a.clinics = service.NewClinicService(client, logger.For("clinics"))
	a.entities = entityServices{
		patients:      service.NewPatientService(client),
		appointments:  service.NewAppointmentService(client),
		users:         service.NewUserService(client),
		roles:         service.NewRoleService(client),
		prescriptions: service.NewPrescriptionService(client),
		history:       service.NewMedicalHistoryService(client),
	}
	current := func() *int { return store.Select(a.session, auth.SelectClinicID) }
	a.clinicCtx = service.NewClinicContext(current, a.tenant.Role, a.clinics, logger.For("clinic"))
	a.builder = forms.NewBuilder(a.clinics, a.entities.roles, cfg.OptionCacheTTL, logger.For("forms"))

	auth.Persist(ctx, a.session, persister, logger.For("session"))
	auth.NewEffects(a.authSvc, a.clinics, a.nav, persister, logger.For("auth")).Register(a.session)
	auth.Rehydrate(ctx, a.session, persister, logger.For("session"))

	a.audit = store.New(audit.InitialState(), audit.Reduce, dispatcher, logger.For("audit"))
	audit.NewEffects(service.NewAuditLogService(client), logger.For("audit")).Register(a.audit)
	a.consents = store.New(consent.InitialState(), consent.Reduce, dispatcher, logger.For("consent"))
	consent.NewEffects(service.NewConsentService(client), logger.For("consent")).Register(a.consents)

	return a, nil
}

// settle waits for the session effects started by the last dispatch.
func (a *app) settle(ctx context.Context) error {
	if err := a.session.Settle(ctx); err != nil {
		return fmt.Errorf("session effects: %w", err)
	}
	return nil
}

func (a *app) shutdown() {
	if err := a.close(); err != nil {
		a.log.Error().Err(err).Msg("failed to close session storage")
	}
}

package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/api/middleware"
	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/session"
	"github.com/clinicdesk/clinic-console/internal/router"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
	"github.com/clinicdesk/clinic-console/internal/testutil"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	registerFn func(ctx context.Context, req domain.RegisterRequest) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(context.Context) (*domain.Profile, error) {
	return &domain.Profile{Specialty: "Dental"}, nil
}

func (s *stubAuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	return s.registerFn(ctx, req)
}

type stubClinics struct {
	mu      sync.Mutex
	clinics []domain.Clinic
	created *domain.Clinic
	owner   int
}

func (s *stubClinics) List(context.Context) ([]domain.Clinic, error) {
	return s.clinics, nil
}

func (s *stubClinics) Create(_ context.Context, userID int, c domain.Clinic) (*domain.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner, s.created = userID, &c
	c.ID = domain.Ptr(11)
	return &c, nil
}

func (s *stubClinics) Update(context.Context, domain.Clinic) error { return nil }

// fixture is a started session store with its derived services.
type fixture struct {
	session *store.Store[domain.AuthState]
	tenant  *service.TenantContext
	perms   *service.PermissionService
	clinic  *service.ClinicContext
	nav     *router.History
	ctx     context.Context
}

func newFixture(t *testing.T, authSvc ports.AuthService, clinics ports.ClinicService) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if authSvc == nil {
		authSvc = &stubAuthService{}
	}
	if clinics == nil {
		clinics = &stubClinics{}
	}

	d := queue.NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	s := store.New(domain.InitialAuthState(), auth.Reduce, d, zerolog.Nop())
	p := session.NewPersister(session.NewMemoryStorage(), "clinic", zerolog.Nop())
	nav := router.NewHistory("/", zerolog.Nop())
	auth.NewEffects(authSvc, clinics, nav, p, zerolog.Nop()).Register(s)
	auth.Persist(ctx, s, p, zerolog.Nop())

	token := func() string { return store.Select(s, auth.SelectToken) }
	tenant := service.NewTenantContext(token, zerolog.Nop())
	current := func() *int { return store.Select(s, auth.SelectClinicID) }
	return &fixture{
		session: s,
		tenant:  tenant,
		perms:   service.NewPermissionService(token, tenant),
		clinic:  service.NewClinicContext(current, tenant.Role, clinics, zerolog.Nop()),
		nav:     nav,
		ctx:     ctx,
	}
}

// login restores a session holding a token with claims.
func (f *fixture) login(t *testing.T, claims jwt.MapClaims, clinicID *int) {
	t.Helper()
	f.session.Dispatch(auth.RehydrateAuthState{
		UserID:    domain.Ptr(7),
		UserToken: domain.Ptr(testutil.Token(t, claims)),
		ClinicID:  clinicID,
	})
}

// newContext builds an echo context carrying the fixture's session the way
// the Session middleware would.
func (f *fixture) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxSession, f.session.State())
	c.Set(middleware.CtxRole, f.tenant.Role())
	return c, rec
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.session.Settle(ctx); err != nil {
		t.Fatalf("effects did not settle: %v", err)
	}
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

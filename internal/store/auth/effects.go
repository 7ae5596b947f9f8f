package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/ports"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/session"
	"github.com/clinicdesk/clinic-console/internal/store"
)

// Messages written to AuthState.Error. Backend causes are logged, not stored.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgProfileLoadFailed  = "Failed to load user profile"
)

// Routes the effects navigate to.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Effects coordinates the auth side effects.
type Effects struct {
	auth      ports.AuthService
	clinics   ports.ClinicService
	nav       ports.Navigator
	persister *session.Persister
	log       zerolog.Logger
	store     *store.Store[domain.AuthState]
}

func NewEffects(auth ports.AuthService, clinics ports.ClinicService, nav ports.Navigator, persister *session.Persister, log zerolog.Logger) *Effects {
	return &Effects{auth: auth, clinics: clinics, nav: nav, persister: persister, log: log}
}

// Register wires the effects into s.
func (e *Effects) Register(s *store.Store[domain.AuthState]) {
	e.store = s
	s.On(TypeLogin, "auth.login", e.login)
	s.On(TypeLoginSuccess, "auth.loadProfileAfterLogin", e.loadProfileAfterLogin)
	s.On(TypeLoginSuccess, "auth.resolveClinic", e.resolveClinic)
	s.On(TypeLoadUserProfile, "auth.loadUserProfile", e.loadUserProfile)
	s.On(TypeLoadUserProfileSuccess, "auth.navigateHome", e.navigateHome)
	s.On(TypeLogout, "auth.logout", e.logout)
}

func (e *Effects) login(ctx context.Context, action store.Action) ([]store.Action, error) {
	a := action.(Login)
	resp, err := e.auth.Login(ctx, a.Email, a.Password)
	if err != nil {
		e.log.Warn().Err(err).Str("email", a.Email).Msg("login failed")
		return []store.Action{LoginFailure{Error: MsgInvalidCredentials}}, nil
	}

	var specialty *string
	if resp.Specialty != "" {
		specialty = domain.Ptr(resp.Specialty)
	}
	e.log.Info().Int("user_id", resp.ID).Str("role", resp.Role).Msg("login succeeded")
	return []store.Action{LoginSuccess{
		UserID:    resp.ID,
		UserToken: resp.Token,
		ClinicID:  nonZero(resp.ClinicID),
		Specialty: specialty,
		Role:      resp.Role,
	}}, nil
}

func (e *Effects) loadProfileAfterLogin(context.Context, store.Action) ([]store.Action, error) {
	return []store.Action{LoadUserProfile{}}, nil
}

// loadUserProfile treats 404 and 403 as "no profile" rather than failure so
// a missing or forbidden User/me never blocks login.
func (e *Effects) loadUserProfile(ctx context.Context, _ store.Action) ([]store.Action, error) {
	p, err := e.auth.Me(ctx)
	if !store.Select(e.store, SelectIsLoggedIn) {
		e.log.Debug().Err(err).Msg("session ended during profile load, dropping result")
		return nil, nil
	}
	switch {
	case err == nil:
		specialty := p.Specialty
		if specialty == "" {
			specialty = domain.DefaultSpecialty
		}
		return []store.Action{LoadUserProfileSuccess{Specialty: specialty}}, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrForbidden):
		e.log.Info().Err(err).Msg("profile unavailable, using default specialty")
		return []store.Action{LoadUserProfileSuccess{Specialty: domain.DefaultSpecialty}}, nil
	default:
		e.log.Error().Err(err).Msg("error loading user profile")
		return []store.Action{LoadUserProfileFailure{Error: MsgProfileLoadFailed}}, nil
	}
}

func (e *Effects) navigateHome(context.Context, store.Action) ([]store.Action, error) {
	e.nav.Navigate(RouteHome)
	return nil, nil
}

// resolveClinic picks the first listed clinic for clinic-requiring roles that
// logged in without one.
func (e *Effects) resolveClinic(ctx context.Context, action store.Action) ([]store.Action, error) {
	a := action.(LoginSuccess)
	if a.ClinicID != nil && *a.ClinicID != 0 {
		return nil, nil
	}

	role := a.Role
	if role == "" {
		if claims, err := service.DecodeClaims(a.UserToken); err == nil {
			role = claims.Role
		}
	}
	if !domain.RequiresClinic(role) {
		e.log.Debug().Str("role", role).Msg("role does not require a clinic")
		return nil, nil
	}

	clinics, err := e.clinics.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clinics) == 0 || clinics[0].ID == nil {
		e.log.Warn().Str("role", role).Msg("no clinic available for clinic-scoped role")
		return nil, nil
	}
	e.log.Info().Int("clinic_id", *clinics[0].ID).Msg("setting default clinic")
	return []store.Action{SetClinic{ClinicID: clinics[0].ID}}, nil
}

func (e *Effects) logout(ctx context.Context, _ store.Action) ([]store.Action, error) {
	err := e.persister.Clear(ctx)
	e.nav.Navigate(RouteLogin)
	return nil, err
}

// Persist keeps storage in step with every reduction of s.
func Persist(ctx context.Context, s *store.Store[domain.AuthState], p *session.Persister, log zerolog.Logger) {
	s.OnChange(func(_, next domain.AuthState) {
		if err := p.Sync(ctx, next); err != nil {
			log.Error().Err(err).Msg("failed to persist auth state")
		}
	})
}

// Rehydrate reads the persisted snapshot once and dispatches it. Without a
// snapshot the dispatched fields are nil and the session stays anonymous.
func Rehydrate(ctx context.Context, s *store.Store[domain.AuthState], p *session.Persister, log zerolog.Logger) {
	snap, err := p.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		log.Error().Err(err).Msg("failed to read persisted session")
	}
	s.Dispatch(RehydrateAuthState{
		UserID:    snap.UserID,
		UserToken: snap.UserToken,
		ClinicID:  snap.ClinicID,
		Specialty: snap.Specialty,
	})
}

package auth

import (
	"testing"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/store"
)

func TestReduce_LoginSetsLoadingAndClearsError(t *testing.T) {
	s := domain.AuthState{Error: domain.Ptr("old")}
	got := Reduce(s, Login{Email: "a@b.com", Password: "secret"})
	if !got.Loading || got.Error != nil {
		t.Fatalf("expected loading and no error, got %+v", got)
	}
}

func TestReduce_LoginSuccess(t *testing.T) {
	s := Reduce(domain.InitialAuthState(), Login{})
	got := Reduce(s, LoginSuccess{UserID: 7, UserToken: "t1", ClinicID: domain.Ptr(0), Specialty: domain.Ptr("")})

	if got.UserID == nil || *got.UserID != 7 || got.Token() != "t1" {
		t.Fatalf("identity not set: %+v", got)
	}
	if got.ClinicID != nil {
		t.Fatalf("clinic 0 should be absent, got %d", *got.ClinicID)
	}
	if got.Specialty != nil {
		t.Fatalf("empty specialty should be absent, got %q", *got.Specialty)
	}
	if got.Loading || got.Error != nil {
		t.Fatalf("expected idle state, got %+v", got)
	}
	if got.Phase() != domain.PhaseAuthenticated {
		t.Fatalf("expected authenticated phase, got %s", got.Phase())
	}
}

func TestReduce_LoginFailureKeepsTokenNil(t *testing.T) {
	s := Reduce(domain.InitialAuthState(), Login{})
	got := Reduce(s, LoginFailure{Error: MsgInvalidCredentials})

	if got.UserToken != nil {
		t.Fatalf("token should stay nil")
	}
	if got.Error == nil || *got.Error != MsgInvalidCredentials || got.Loading {
		t.Fatalf("unexpected failure state: %+v", got)
	}
	if got.Phase() != domain.PhaseError {
		t.Fatalf("expected error phase, got %s", got.Phase())
	}
}

func TestReduce_ProfileFailureDefaultsSpecialty(t *testing.T) {
	s := Reduce(domain.AuthState{UserID: domain.Ptr(1), UserToken: domain.Ptr("t")}, LoadUserProfile{})
	if !s.Loading {
		t.Fatalf("profile load should set loading")
	}
	got := Reduce(s, LoadUserProfileFailure{Error: MsgProfileLoadFailed})
	if got.Specialty == nil || *got.Specialty != domain.DefaultSpecialty {
		t.Fatalf("expected default specialty, got %v", got.Specialty)
	}
	if got.Error == nil || got.Loading {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestReduce_ProfileSuccess(t *testing.T) {
	s := domain.AuthState{UserID: domain.Ptr(1), UserToken: domain.Ptr("t"), Loading: true, Error: domain.Ptr("x")}
	got := Reduce(s, LoadUserProfileSuccess{Specialty: "Dental"})
	if got.Specialty == nil || *got.Specialty != "Dental" || got.Loading || got.Error != nil {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestReduce_ProfileResultIgnoredWithoutToken(t *testing.T) {
	for _, a := range []store.Action{
		LoadUserProfileSuccess{Specialty: "Dental"},
		LoadUserProfileFailure{Error: MsgProfileLoadFailed},
	} {
		if got := Reduce(domain.InitialAuthState(), a); !got.Equal(domain.InitialAuthState()) {
			t.Fatalf("%T changed logged-out state: %+v", a, got)
		}
	}
}

func TestReduce_LogoutResets(t *testing.T) {
	s := domain.AuthState{UserID: domain.Ptr(1), UserToken: domain.Ptr("t"), ClinicID: domain.Ptr(2), Specialty: domain.Ptr("General")}
	once := Reduce(s, Logout{})
	twice := Reduce(once, Logout{})
	if !once.Equal(domain.InitialAuthState()) || !twice.Equal(once) {
		t.Fatalf("logout not idempotent: %+v %+v", once, twice)
	}
}

func TestReduce_RehydrateMergesAndResetsFlags(t *testing.T) {
	s := domain.AuthState{Loading: true, Error: domain.Ptr("stale")}
	got := Reduce(s, RehydrateAuthState{
		UserID:    domain.Ptr(7),
		UserToken: domain.Ptr("t1"),
		ClinicID:  domain.Ptr(3),
		Specialty: domain.Ptr("General"),
	})
	want := domain.AuthState{UserID: domain.Ptr(7), UserToken: domain.Ptr("t1"), ClinicID: domain.Ptr(3), Specialty: domain.Ptr("General")}
	if !got.Equal(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Phase() != domain.PhaseClinicResolved {
		t.Fatalf("expected clinic resolved, got %s", got.Phase())
	}
}

func TestReduce_RehydrateDropsOrphanToken(t *testing.T) {
	got := Reduce(domain.InitialAuthState(), RehydrateAuthState{UserToken: domain.Ptr("t1")})
	if got.UserToken != nil {
		t.Fatalf("token without user id must be dropped")
	}
}

func TestReduce_SetClinicAndLoading(t *testing.T) {
	s := domain.AuthState{Error: domain.Ptr("x")}
	s = Reduce(s, SetClinic{ClinicID: domain.Ptr(3)})
	if s.ClinicID == nil || *s.ClinicID != 3 || s.Error != nil {
		t.Fatalf("unexpected state after set clinic: %+v", s)
	}
	s = Reduce(s, SetLoading{Loading: true})
	if !s.Loading {
		t.Fatalf("set loading ignored")
	}
}

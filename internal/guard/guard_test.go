package guard

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/queue"
	"github.com/clinicdesk/clinic-console/internal/store"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
	"github.com/clinicdesk/clinic-console/internal/testutil"
)

type fixture struct {
	session *store.Store[domain.AuthState]
	perms   *service.PermissionService
	tenant  *service.TenantContext
}

func newFixture(token string) fixture {
	state := domain.InitialAuthState()
	if token != "" {
		state.UserID = domain.Ptr(7)
		state.UserToken = domain.Ptr(token)
	}
	s := store.New(state, auth.Reduce, queue.NewDispatcher(1, zerolog.Nop()), zerolog.Nop())
	src := func() string { return store.Select(s, auth.SelectToken) }
	tenant := service.NewTenantContext(src, zerolog.Nop())
	return fixture{session: s, perms: service.NewPermissionService(src, tenant), tenant: tenant}
}

func TestAuthGuard(t *testing.T) {
	route := RouteSnapshot{URL: "/patients?page=2"}

	if d := NewAuthGuard(newFixture("").session, zerolog.Nop()).CanActivate(route); d.Allow {
		t.Fatalf("anonymous session must be denied")
	} else if d.Redirect != RouteLogin || d.ReturnURL != "/patients?page=2" {
		t.Fatalf("unexpected decision: %+v", d)
	} else if got := d.Location(); got != "/login?returnUrl=%2Fpatients%3Fpage%3D2" {
		t.Fatalf("unexpected location %q", got)
	}

	tok := testutil.Token(t, jwt.MapClaims{"userId": "7"})
	if d := NewAuthGuard(newFixture(tok).session, zerolog.Nop()).CanActivate(route); !d.Allow {
		t.Fatalf("logged in session must be allowed: %+v", d)
	}
}

func TestAuditAccessGuard(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		params map[string]string
		allow  bool
	}{
		{"no permission", jwt.MapClaims{"roles": []string{"DOCTOR"}}, nil, false},
		{"explicit permission", jwt.MapClaims{"permissions": []string{"VIEW_AUDIT_LOGS"}}, nil, true},
		{"role permission", jwt.MapClaims{"roles": []string{"CLINIC_ADMIN"}}, nil, true},
		{"clinic in list", jwt.MapClaims{"roles": []string{"CLINIC_ADMIN"}, "clinicIds": []int{3, 4}}, map[string]string{"clinicId": "4"}, true},
		{"clinic outside list", jwt.MapClaims{"roles": []string{"CLINIC_ADMIN"}, "clinicIds": []int{3}}, map[string]string{"clinicId": "9"}, false},
		{"unrestricted token", jwt.MapClaims{"roles": []string{"SUPER_ADMIN"}}, map[string]string{"clinicId": "9"}, true},
		{"bad clinic param", jwt.MapClaims{"roles": []string{"SUPER_ADMIN"}}, map[string]string{"clinicId": "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testutil.Token(t, tt.claims))
			g := NewAuditAccessGuard(f.perms, f.tenant, zerolog.Nop())
			d := g.CanActivate(RouteSnapshot{URL: "/audit-logs", Params: tt.params})
			if d.Allow != tt.allow {
				t.Fatalf("expected allow=%v, got %+v", tt.allow, d)
			}
			if !d.Allow && d.Redirect != RouteUnauthorized {
				t.Fatalf("expected unauthorized redirect, got %q", d.Redirect)
			}
		})
	}
}

func TestAuditAdminGuard(t *testing.T) {
	for perm, allow := range map[string]bool{
		"MANAGE_AUDIT_LOGS":      true,
		"GENERATE_AUDIT_REPORTS": true,
		"EXPORT_AUDIT_LOGS":      true,
		"VIEW_AUDIT_LOGS":        false,
	} {
		f := newFixture(testutil.Token(t, jwt.MapClaims{"permissions": []string{perm}}))
		d := NewAuditAdminGuard(f.perms, zerolog.Nop()).CanActivate(RouteSnapshot{URL: "/audit-logs/export"})
		if d.Allow != allow {
			t.Errorf("%s: expected allow=%v, got %+v", perm, allow, d)
		}
	}
}

func TestConsentAccessGuard(t *testing.T) {
	f := newFixture(testutil.Token(t, jwt.MapClaims{"roles": []string{"PATIENT"}}))
	if d := NewConsentAccessGuard(f.perms, zerolog.Nop()).CanActivate(RouteSnapshot{URL: "/consents/9"}); !d.Allow {
		t.Fatalf("patient should view consent: %+v", d)
	}

	f = newFixture(testutil.Token(t, jwt.MapClaims{"roles": []string{"NURSE"}}))
	if d := NewConsentAccessGuard(f.perms, zerolog.Nop()).CanActivate(RouteSnapshot{URL: "/consents/9"}); d.Allow {
		t.Fatalf("nurse should not view consent")
	}
}

func TestCheck_FirstDenialWins(t *testing.T) {
	f := newFixture("")
	d := Check(RouteSnapshot{URL: "/audit-logs"},
		NewAuthGuard(f.session, zerolog.Nop()),
		NewAuditAdminGuard(f.perms, zerolog.Nop()),
	)
	if d.Allow || d.Redirect != RouteLogin {
		t.Fatalf("expected login redirect, got %+v", d)
	}
	if got := (Decision{Allow: true}).Location(); got != "" {
		t.Fatalf("allowed decision has no location, got %q", got)
	}
}

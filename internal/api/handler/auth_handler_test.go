package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/testutil"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	tok := testutil.Token(t, jwt.MapClaims{"role": "Doctor", "userId": "7"})
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.LoginResponse, error) {
			if email != "doc@clinic.io" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &domain.LoginResponse{ID: 7, Token: tok, Role: "Doctor"}, nil
		},
	}
	clinics := &stubClinics{clinics: []domain.Clinic{{ID: domain.Ptr(3)}}}
	f := newFixture(t, stub, clinics)
	h := NewAuthHandler(f.session, stub, f.tenant, f.clinic, f.nav)

	c, rec := f.newContext(http.MethodPost, "/login?returnUrl=%2Fpatients", `{"email":"doc@clinic.io","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.LoggedIn || resp.Redirect != "/patients" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Auth.ClinicID == nil || *resp.Auth.ClinicID != 3 {
		t.Fatalf("clinic should be resolved before answering: %+v", resp.Auth)
	}
	if resp.Auth.Specialty == nil || *resp.Auth.Specialty != "Dental" {
		t.Fatalf("profile should be loaded before answering: %+v", resp.Auth)
	}
	if resp.Phase != domain.PhaseClinicResolved {
		t.Fatalf("unexpected phase %s", resp.Phase)
	}
}

func TestAuthHandler_Login_RejectsOffsiteReturnURL(t *testing.T) {
	tok := testutil.Token(t, jwt.MapClaims{"role": "SuperAdmin"})
	stub := &stubAuthService{loginFn: func(context.Context, string, string) (*domain.LoginResponse, error) {
		return &domain.LoginResponse{ID: 7, Token: tok, Role: "SuperAdmin"}, nil
	}}
	f := newFixture(t, stub, nil)
	h := NewAuthHandler(f.session, stub, f.tenant, f.clinic, f.nav)

	c, rec := f.newContext(http.MethodPost, "/login?returnUrl=%2F%2Fevil.example", `{"email":"a@b.io","password":"x"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Redirect != "/" {
		t.Fatalf("expected home redirect, got %q", resp.Redirect)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{loginFn: func(context.Context, string, string) (*domain.LoginResponse, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	f := newFixture(t, stub, nil)
	h := NewAuthHandler(f.session, stub, f.tenant, f.clinic, f.nav)

	c, _ := f.newContext(http.MethodPost, "/login", `{"email":"a@b.io","password":"bad"}`)
	if code := httpCode(t, h.Login(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if st := f.session.State(); st.Error == nil || st.Loading {
		t.Fatalf("failure should be in state: %+v", st)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	f := newFixture(t, nil, nil)
	h := NewAuthHandler(f.session, &stubAuthService{}, f.tenant, f.clinic, f.nav)

	c, _ := f.newContext(http.MethodPost, "/login", `{"email":"not-an-email"}`)
	if code := httpCode(t, h.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	var got domain.RegisterRequest
	stub := &stubAuthService{registerFn: func(_ context.Context, req domain.RegisterRequest) error {
		got = req
		return nil
	}}
	f := newFixture(t, stub, nil)
	h := NewAuthHandler(f.session, stub, f.tenant, f.clinic, f.nav)

	c, rec := f.newContext(http.MethodPost, "/signup", `{"name":"Ana","email":"ana@clinic.io","password":"secret1","acceptPrivacyTerms":true}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || got.Email != "ana@clinic.io" || !got.AcceptPrivacyTerms {
		t.Fatalf("unexpected result %d %+v", rec.Code, got)
	}

	c, _ = f.newContext(http.MethodPost, "/signup", `{"name":"Ana","email":"ana@clinic.io","password":"123"}`)
	if code := httpCode(t, h.Signup(c)); code != http.StatusBadRequest {
		t.Fatalf("short password should fail validation, got %d", code)
	}
}

func TestAuthHandler_Signup_BackendError(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubAuthService{registerFn: func(context.Context, domain.RegisterRequest) error { return boom }}
	f := newFixture(t, stub, nil)
	h := NewAuthHandler(f.session, stub, f.tenant, f.clinic, f.nav)

	c, _ := f.newContext(http.MethodPost, "/signup", `{"name":"Ana","email":"ana@clinic.io","password":"secret1"}`)
	if err := h.Signup(c); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestAuthHandler_LogoutIsIdempotent(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.login(t, jwt.MapClaims{"role": "Doctor"}, domain.Ptr(3))
	h := NewAuthHandler(f.session, &stubAuthService{}, f.tenant, f.clinic, f.nav)

	for range 2 {
		c, rec := f.newContext(http.MethodPost, "/logout", "")
		if err := h.Logout(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}
	if f.session.State().LoggedIn() {
		t.Fatalf("session should be cleared")
	}
	if f.nav.Current() != "/login" {
		t.Fatalf("expected navigation to /login, got %q", f.nav.Current())
	}
}

func TestAuthHandler_Session(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.login(t, jwt.MapClaims{"role": "Doctor", "clinicIds": []int{3, 4}}, nil)
	f.settle(t)
	h := NewAuthHandler(f.session, &stubAuthService{}, f.tenant, f.clinic, f.nav)

	c, rec := f.newContext(http.MethodGet, "/session", "")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.LoggedIn || resp.Tenant == nil || resp.Tenant.Role != "Doctor" {
		t.Fatalf("unexpected session: %+v", resp)
	}
	if !resp.Clinic.Required || resp.Location != "/" {
		t.Fatalf("unexpected clinic/location: %+v", resp)
	}
}

func TestAuthHandler_Pages(t *testing.T) {
	f := newFixture(t, nil, nil)
	h := NewAuthHandler(f.session, &stubAuthService{}, f.tenant, f.clinic, f.nav)

	c, rec := f.newContext(http.MethodGet, "/unauthorized?returnUrl=%2Faudit-logs", "")
	if err := h.Unauthorized(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	c, rec = f.newContext(http.MethodGet, "/login?returnUrl=%2Fpatients", "")
	if err := h.LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["returnUrl"] != "/patients" {
		t.Fatalf("unexpected body %v", body)
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinic-console/internal/api/metrics"
)

// Header names set by the interceptors.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderAccountID = "X-Account-Id"
	HeaderClinicID  = "X-Clinic-Id"
	HeaderUserID    = "X-User-Id"
)

// Interceptor decorates a RoundTripper.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base so that the first interceptor sees the request first.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	rt := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		rt = interceptors[i](rt)
	}
	return rt
}

// RequestID stamps a fresh uuid on requests that carry none.
func RequestID() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(HeaderRequestID) != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set(HeaderRequestID, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// BearerAuth attaches the token returned by token, when non-empty. token is
// read once per request.
func BearerAuth(token func() string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			t := token()
			if t == "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+t)
			return next.RoundTrip(r)
		})
	}
}

// TenantHeaders yields the account, clinic and user identifiers of the
// current session. Empty values are not sent.
type TenantHeaders func() (accountID, clinicID, userID string)

var auditPaths = []string{"/api/audit", "/api/consent", "/audit-logs", "/consent"}

// IsAuditPath reports whether path belongs to the audit or consent surface.
func IsAuditPath(path string) bool {
	for _, p := range auditPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// AuditContext adds tenant headers to audit and consent requests.
func AuditContext(tenant TenantHeaders) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if !IsAuditPath(r.URL.Path) {
				return next.RoundTrip(r)
			}
			accountID, clinicID, userID := tenant()
			r = r.Clone(r.Context())
			for h, v := range map[string]string{
				HeaderAccountID: accountID,
				HeaderClinicID:  clinicID,
				HeaderUserID:    userID,
			} {
				if v != "" {
					r.Header.Set(h, v)
				}
			}
			return next.RoundTrip(r)
		})
	}
}

// SessionErrors reacts to 401 and 403 responses. The response is still
// returned to the caller unchanged.
func SessionErrors(onUnauthorized, onForbidden func()) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(r)
			if err != nil {
				return resp, err
			}
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				if onUnauthorized != nil {
					onUnauthorized()
				}
			case http.StatusForbidden:
				if onForbidden != nil {
					onForbidden()
				}
			}
			return resp, nil
		})
	}
}

// Instrument records request counts and latency.
func Instrument() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			metrics.BackendRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			metrics.BackendRequestsTotal.WithLabelValues(r.Method, status).Inc()
			return resp, err
		})
	}
}

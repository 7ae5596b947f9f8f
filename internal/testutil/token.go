// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token signs claims with a throwaway key. The console never verifies
// signatures, so any key works.
func Token(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ExpiringToken is Token with an exp claim offset from now.
func ExpiringToken(t testing.TB, claims jwt.MapClaims, in time.Duration) string {
	t.Helper()
	c := jwt.MapClaims{"exp": time.Now().Add(in).Unix()}
	for k, v := range claims {
		c[k] = v
	}
	return Token(t, c)
}

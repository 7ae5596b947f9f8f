package domain

import "time"

// TokenClaims is the subset of the bearer token payload the console relies on.
// Claims are read without signature verification.
type TokenClaims struct {
	AccountID   string
	ClinicID    string
	ClinicIDs   []int
	UserID      string
	Role        string
	Roles       []string
	Permissions []string
	ExpiresAt   *time.Time
}

// Expired reports whether the token carried an exp claim that is not after now.
// Tokens without exp never expire client-side.
func (c TokenClaims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(*c.ExpiresAt)
}

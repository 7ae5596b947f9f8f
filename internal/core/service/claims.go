package service

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinic-console/internal/core/domain"
)

// DecodeClaims reads the payload of a bearer token without verifying its
// signature. The backend is the only party that validates tokens.
func DecodeClaims(token string) (domain.TokenClaims, error) {
	if token == "" {
		return domain.TokenClaims{}, domain.ErrInvalidToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	c := domain.TokenClaims{
		AccountID:   scalar(mc["accountId"]),
		ClinicID:    scalar(mc["clinicId"]),
		ClinicIDs:   intList(mc["clinicIds"]),
		UserID:      scalar(mc["userId"]),
		Role:        scalar(mc["role"]),
		Roles:       stringList(mc["roles"]),
		Permissions: stringList(mc["permissions"]),
	}
	if c.UserID == "" {
		c.UserID = scalar(mc["sub"])
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		c.ExpiresAt = &t
	}
	return c, nil
}

// scalar renders a string or numeric claim; anything else is "".
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

func stringList(v any) []string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s := scalar(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intList(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		switch x := e.(type) {
		case float64:
			out = append(out, int(x))
		case string:
			if n, err := strconv.Atoi(x); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}

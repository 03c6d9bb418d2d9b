// Package token decodes bearer tokens issued by the OldBaker backend.
//
// Decoding is unverified: the payload is parsed without checking the
// signature. It exists so the client can show or act on the expiry claim
// without a round trip. The server remains the authority on validity, so
// never use these results for access control.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/oldbaker/go-storefront/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ExpiryMargin is subtracted from a token's literal expiry: a token is
// treated as expired this long before its exp claim, tolerating clock skew
// and requests already in flight.
const ExpiryMargin = 60 * time.Second

// Claims holds the subset of payload claims the client cares about.
type Claims struct {
	Exp   int64    // Expiry, epoch seconds
	Sub   string   // User's unique ID
	Email string   // User's email address
	Roles []string // Roles assigned to the user
}

// ExpiresAt returns the expiry instant, or the zero time when no expiry
// claim was present.
func (c *Claims) ExpiresAt() time.Time {
	if c.Exp == 0 {
		return time.Time{}
	}
	return time.Unix(c.Exp, 0)
}

// Decode extracts claims from a bearer token without verifying its
// signature. The token may carry a scheme prefix ("Bearer <jwt>", any case)
// which is stripped first. Returns nil for anything that is not a parseable
// three-segment JWT; it never panics or returns an error.
func Decode(token string) *Claims {
	raw := StripScheme(token)
	if raw == "" {
		return nil
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil
	}

	mapClaims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}

	claims := &Claims{}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = int64(exp)
	}
	claims.Sub, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	if roles, ok := mapClaims["roles"].([]any); ok {
		claims.Roles = utils.ToStringSlice(roles)
	}

	return claims
}

// IsExpired reports whether the token should be treated as expired.
// Fail-closed: undecodable tokens and tokens without an expiry claim count
// as expired. Decodable tokens expire ExpiryMargin before their exp claim.
func IsExpired(token string) bool {
	claims := Decode(token)
	if claims == nil || claims.Exp == 0 {
		return true
	}
	return !NowTimeFunc().Before(claims.ExpiresAt().Add(-ExpiryMargin))
}

// TimeRemaining returns the duration until the token's literal expiry,
// ignoring the margin. Zero for undecodable tokens and tokens already past
// their expiry.
func TimeRemaining(token string) time.Duration {
	claims := Decode(token)
	if claims == nil || claims.Exp == 0 {
		return 0
	}
	remaining := claims.ExpiresAt().Sub(NowTimeFunc())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StripScheme removes an optional case-insensitive scheme label
// ("Bearer <token>") and surrounding whitespace, returning the bare token.
func StripScheme(token string) string {
	trimmed := strings.TrimSpace(token)
	if fields := strings.SplitN(trimmed, " ", 2); len(fields) == 2 && strings.EqualFold(fields[0], "bearer") {
		return strings.TrimSpace(fields[1])
	}
	return trimmed
}

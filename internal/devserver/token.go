package devserver

import (
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// DefaultTokenTTL is the access-token lifetime when none is configured.
const DefaultTokenTTL = time.Hour

// TokenIssuer mints and verifies the HS256 access tokens the development
// server hands out.
type TokenIssuer struct {
	issuer string
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer. A zero ttl falls back to
// DefaultTokenTTL.
func NewTokenIssuer(issuer string, secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{issuer: issuer, secret: secret, ttl: ttl}
}

// Issue creates a signed access token for the account.
func (ti *TokenIssuer) Issue(acct *account) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":   ti.issuer,
		"sub":   strconv.FormatInt(acct.ID, 10),
		"email": acct.Email,
		"roles": []string{acct.Rol},
		"iat":   now.Unix(),
		"exp":   now.Add(ti.ttl).Unix(),
		"jti":   uuid.New().String(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the claims.
func (ti *TokenIssuer) Verify(raw string) (jwtlib.MapClaims, error) {
	parsed, err := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	).Parse(raw, func(*jwtlib.Token) (any, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	return claims, nil
}

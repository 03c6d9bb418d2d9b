// Package oauthlogin implements the Google sign-in handoff: the standard
// authorization-code flow against the identity provider, plus parsing of
// the callback payload the OldBaker backend forwards to the client.
package oauthlogin

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Identity is what the provider asserts about the signed-in user.
type Identity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// Flow drives one provider's authorization-code sign-in.
type Flow struct {
	oauthConfig oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

// NewFlow discovers the provider's endpoints and prepares the flow.
func NewFlow(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*Flow, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover provider %q: %w", issuer, err)
	}

	return &Flow{
		oauthConfig: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewState returns a fresh opaque state value for one sign-in attempt.
func NewState() string {
	return uuid.New().String()
}

// AuthURL builds the provider URL the user's browser must visit.
func (f *Flow) AuthURL(state string) string {
	return f.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps the callback code for tokens and returns the verified
// identity from the ID token.
func (f *Flow) Exchange(ctx context.Context, code string) (*Identity, error) {
	oauth2Token, err := f.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("no ID token in provider response")
	}

	idToken, err := f.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify ID token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("extract ID token claims: %w", err)
	}

	return &Identity{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
	}, nil
}

package oauthlogin

import (
	"encoding/json"
	"net/url"

	"github.com/oldbaker/go-storefront/api"
)

// CallbackResult is what could be extracted from the backend's OAuth
// callback payload. Token may be empty when the account still needs email
// verification; User may be nil when only a token was forwarded.
type CallbackResult struct {
	User  *api.User
	Token string
}

// NeedsVerification reports whether the callback identified an account
// that has not completed email verification yet. The caller should stash
// the user id in the pending-verification scratch key and show the verify
// screen.
func (r *CallbackResult) NeedsVerification() bool {
	return r.User != nil && !r.User.Verificado && r.User.ID != 0
}

// ParseCallbackData decodes the `data` parameter the backend appends to the
// OAuth callback redirect. The payload is URL-encoded JSON whose user and
// token live under several historical key layouts; nil is returned when
// nothing usable is present.
func ParseCallbackData(raw string) *CallbackResult {
	if raw == "" {
		return nil
	}

	jsonStr, err := url.QueryUnescape(raw)
	if err != nil {
		jsonStr = raw
	}

	var payload struct {
		Data *struct {
			api.SessionData
			Data *api.User `json:"data"`
		} `json:"data"`
		User    *api.User `json:"user"`
		Usuario *api.User `json:"usuario"`
		Token   string    `json:"token"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil
	}

	result := &CallbackResult{Token: payload.Token}

	switch {
	case payload.Data != nil && payload.Data.Data != nil:
		result.User = payload.Data.Data
	case payload.Data != nil && payload.Data.Usuario != nil:
		result.User = payload.Data.Usuario
	case payload.User != nil:
		result.User = payload.User
	case payload.Usuario != nil:
		result.User = payload.Usuario
	}

	if payload.Data != nil && result.Token == "" {
		result.Token = payload.Data.AccessToken
	}

	if result.User == nil && result.Token == "" {
		return nil
	}
	return result
}

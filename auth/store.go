// Package auth owns the client's session state: the current user, the token
// material, and their persistence. Every other component reads the session
// through this store and never writes the underlying storage keys itself.
package auth

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/oldbaker/go-storefront/api"
	"github.com/oldbaker/go-storefront/storage"
	"github.com/oldbaker/go-storefront/token"
)

// LogoutNotifier is the backend call a logout makes. It receives the bearer
// token without its scheme prefix; the implementation sends it both as the
// Authorization header and in the body, as the server flow requires.
type LogoutNotifier interface {
	Logout(ctx context.Context, email, rawToken string) error
}

// CartClearer empties the shopping cart. Logout must leave no basket behind
// for the next user of the profile.
type CartClearer interface {
	Clear()
}

// Listener receives the current user after every session change; nil means
// logged out.
type Listener func(user *api.User)

// Store is the single source of truth for session state. SaveSession,
// Logout, ClearLocalAuth and Initialize are serialized by one mutex so the
// persisted token and user can never disagree; concurrent writers follow
// last-writer-wins.
type Store struct {
	storage storage.Store
	backend LogoutNotifier
	cart    CartClearer

	lock        sync.Mutex
	user        *api.User
	initialized bool
	listeners   map[int]Listener
	nextID      int
}

// NewStore creates an auth store over the given storage. backend and cart
// may be nil in tests that exercise only local state.
func NewStore(st storage.Store, backend LogoutNotifier, cart CartClearer) *Store {
	return &Store{
		storage:   st,
		backend:   backend,
		cart:      cart,
		listeners: make(map[int]Listener),
	}
}

// Initialize reconciles persisted state once at startup, before the idle
// watchdog or the liveness check start: a missing or expired token forces
// the session empty even when a user record was persisted. Subsequent calls
// are no-ops.
func (s *Store) Initialize() {
	s.lock.Lock()
	if s.initialized {
		s.lock.Unlock()
		return
	}
	s.initialized = true

	stored, ok := s.storage.Get(storage.AuthTokenKey)
	if !ok || token.IsExpired(stored) {
		if ok {
			log.Info().Msg("persisted token expired, clearing session")
		}
		s.clearSessionLocked()
		s.notifyLocked()
		return
	}

	if raw, ok := s.storage.Get(storage.AuthUserKey); ok {
		var user api.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		}
	}
	// A valid token without a readable user record is an inconsistent
	// session; treat it as logged out.
	if s.user == nil {
		s.clearSessionLocked()
	}
	s.notifyLocked()
}

// SaveSession persists the fields present in a successful auth response and
// publishes the new current user. Absent fields are skipped rather than
// overwritten with empty values; an empty response is a no-op.
func (s *Store) SaveSession(resp *api.AuthResponse) error {
	if resp == nil || resp.Data == nil {
		return nil
	}
	data := resp.Data

	s.lock.Lock()

	if data.AccessToken != "" {
		tokenType := data.TokenType
		if tokenType == "" {
			tokenType = "Bearer"
		}
		if err := s.storage.Set(storage.AuthTokenKey, tokenType+" "+data.AccessToken); err != nil {
			s.lock.Unlock()
			return errors.Wrap(err, "persist access token")
		}
	}
	if data.RefreshToken != "" {
		if err := s.storage.Set(storage.RefreshTokenKey, data.RefreshToken); err != nil {
			s.lock.Unlock()
			return errors.Wrap(err, "persist refresh token")
		}
	}
	if data.Usuario != nil {
		raw, err := json.Marshal(data.Usuario)
		if err != nil {
			s.lock.Unlock()
			return errors.Wrap(err, "serialize user")
		}
		if err := s.storage.Set(storage.AuthUserKey, string(raw)); err != nil {
			s.lock.Unlock()
			return errors.Wrap(err, "persist user")
		}
		s.user = data.Usuario
	}

	s.notifyLocked()
	return nil
}

// CurrentUser returns the published user, nil when logged out.
func (s *Store) CurrentUser() *api.User {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.user
}

// Token returns the persisted scheme-prefixed token and whether one exists.
func (s *Store) Token() (string, bool) {
	return s.storage.Get(storage.AuthTokenKey)
}

// RawToken returns the persisted token without its scheme prefix.
func (s *Store) RawToken() string {
	stored, ok := s.Token()
	if !ok {
		return ""
	}
	return token.StripScheme(stored)
}

// AuthHeader implements api.TokenProvider: the stored token already carries
// its scheme prefix.
func (s *Store) AuthHeader() string {
	stored, _ := s.Token()
	return stored
}

// IsValid reports whether a token is stored and not past its safety-margin
// expiry. It reads storage directly, so it also reflects changes made by a
// concurrent writer.
func (s *Store) IsValid() bool {
	stored, ok := s.Token()
	if !ok {
		return false
	}
	return !token.IsExpired(stored)
}

// Logout ends the session. When an email and a token are available it
// notifies the server best-effort; whatever that call's outcome, the local
// session and the cart are cleared and subscribers see a nil user.
func (s *Store) Logout(ctx context.Context) {
	s.lock.Lock()

	email := ""
	if s.user != nil {
		email = s.user.Email
	}
	rawToken := s.RawToken()

	if s.backend != nil && email != "" && rawToken != "" {
		if err := s.backend.Logout(ctx, email, rawToken); err != nil {
			log.Warn().Err(err).Msg("server logout notification failed, clearing local session anyway")
		}
	}

	s.clearSessionLocked()
	if s.cart != nil {
		s.cart.Clear()
	}
	s.notifyLocked()
}

// ClearLocalAuth drops the local session without notifying the server. Used
// by the liveness check and by callers that already know the server-side
// session is gone.
func (s *Store) ClearLocalAuth() {
	s.lock.Lock()
	s.clearSessionLocked()
	s.notifyLocked()
}

// Subscribe registers a session listener and returns its unsubscribe
// function.
func (s *Store) Subscribe(listener Listener) func() {
	s.lock.Lock()
	defer s.lock.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.listeners, id)
	}
}

// clearSessionLocked removes every persisted session field and the current
// user. Callers hold the lock.
func (s *Store) clearSessionLocked() {
	for _, key := range []string{storage.AuthTokenKey, storage.RefreshTokenKey, storage.AuthUserKey} {
		if err := s.storage.Delete(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not remove session field")
		}
	}
	s.user = nil
}

// notifyLocked unlocks the store and fans the current user out to the
// listeners. Listeners run without the lock so they may call back in.
func (s *Store) notifyLocked() {
	user := s.user
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.lock.Unlock()

	for _, listener := range listeners {
		listener(user)
	}
}

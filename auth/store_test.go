package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/api"
	"github.com/oldbaker/go-storefront/auth"
	"github.com/oldbaker/go-storefront/cart"
	"github.com/oldbaker/go-storefront/storage"
	"github.com/oldbaker/go-storefront/storage/storefake"
)

type fakeBackend struct {
	calls    int
	email    string
	rawToken string
	err      error
}

func (f *fakeBackend) Logout(_ context.Context, email, rawToken string) error {
	f.calls++
	f.email = email
	f.rawToken = rawToken
	return f.err
}

type fixture struct {
	storage *storefake.FakeStore
	backend *fakeBackend
	cart    *cart.Store
	store   *auth.Store
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	st := storefake.NewFakeStore()
	backend := &fakeBackend{}
	basket := cart.New(st)
	return &fixture{
		storage: st,
		backend: backend,
		cart:    basket,
		store:   auth.NewStore(st, backend, basket),
	}
}

func tokenWithExpiry(t *testing.T, expiry time.Time) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp": float64(expiry.Unix()),
		"sub": "1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func loginResponse(t *testing.T, accessToken string) *api.AuthResponse {
	t.Helper()
	return &api.AuthResponse{
		Success: true,
		Data: &api.SessionData{
			AccessToken:  accessToken,
			RefreshToken: "refresh-1",
			TokenType:    "Bearer",
			Usuario:      &api.User{ID: 1, Email: "ana@oldbaker.com", Nombre: "Ana", Rol: "CLIENTE"},
		},
	}
}

func TestSaveSessionThenIsValid(t *testing.T) {
	f := setupFixture(t)
	f.store.Initialize()

	fresh := tokenWithExpiry(t, time.Now().Add(time.Hour))
	require.NoError(t, f.store.SaveSession(loginResponse(t, fresh)))

	require.True(t, f.store.IsValid())
	user := f.store.CurrentUser()
	require.NotNil(t, user)
	require.Equal(t, "ana@oldbaker.com", user.Email)

	stored, ok := f.storage.Get(storage.AuthTokenKey)
	require.True(t, ok)
	require.Equal(t, "Bearer "+fresh, stored)
	require.Equal(t, fresh, f.store.RawToken())
}

func TestSaveSessionSkipsAbsentFields(t *testing.T) {
	f := setupFixture(t)
	f.store.Initialize()
	require.NoError(t, f.store.SaveSession(loginResponse(t, tokenWithExpiry(t, time.Now().Add(time.Hour)))))

	// A partial response must not blank out what is already stored.
	require.NoError(t, f.store.SaveSession(&api.AuthResponse{Success: true, Data: &api.SessionData{}}))
	_, ok := f.storage.Get(storage.AuthTokenKey)
	require.True(t, ok)
	require.NotNil(t, f.store.CurrentUser())

	// An empty response is a no-op.
	require.NoError(t, f.store.SaveSession(nil))
	require.NoError(t, f.store.SaveSession(&api.AuthResponse{Success: true}))
	require.NotNil(t, f.store.CurrentUser())
}

func TestInitializeRestoresValidSession(t *testing.T) {
	st := storefake.NewFakeStore()
	fresh := tokenWithExpiry(t, time.Now().Add(time.Hour))
	require.NoError(t, st.Set(storage.AuthTokenKey, "Bearer "+fresh))
	userJSON, _ := json.Marshal(api.User{ID: 1, Email: "ana@oldbaker.com", Nombre: "Ana"})
	require.NoError(t, st.Set(storage.AuthUserKey, string(userJSON)))

	store := auth.NewStore(st, &fakeBackend{}, nil)
	store.Initialize()

	require.True(t, store.IsValid())
	require.NotNil(t, store.CurrentUser())
	require.Equal(t, "Ana", store.CurrentUser().Nombre)
}

func TestInitializeClearsExpiredSession(t *testing.T) {
	st := storefake.NewFakeStore()
	stale := tokenWithExpiry(t, time.Now().Add(-time.Hour))
	require.NoError(t, st.Set(storage.AuthTokenKey, "Bearer "+stale))
	require.NoError(t, st.Set(storage.RefreshTokenKey, "refresh-1"))
	userJSON, _ := json.Marshal(api.User{ID: 1, Email: "ana@oldbaker.com"})
	require.NoError(t, st.Set(storage.AuthUserKey, string(userJSON)))

	store := auth.NewStore(st, &fakeBackend{}, nil)
	store.Initialize()

	// The user record was persisted too, but an expired token forces the
	// session empty.
	require.Nil(t, store.CurrentUser())
	require.False(t, store.IsValid())
	_, ok := st.Get(storage.AuthTokenKey)
	require.False(t, ok)
	_, ok = st.Get(storage.RefreshTokenKey)
	require.False(t, ok)
	_, ok = st.Get(storage.AuthUserKey)
	require.False(t, ok)
}

func TestInitializeWithoutTokenLeavesSessionEmpty(t *testing.T) {
	f := setupFixture(t)
	f.store.Initialize()
	require.Nil(t, f.store.CurrentUser())
	require.False(t, f.store.IsValid())
}

func TestLogoutClearsEverything(t *testing.T) {
	for _, tc := range []struct {
		name       string
		backendErr error
	}{
		{name: "server call succeeds"},
		{name: "server call fails", backendErr: errors.New("connection refused")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := setupFixture(t)
			f.store.Initialize()
			f.backend.err = tc.backendErr

			fresh := tokenWithExpiry(t, time.Now().Add(time.Hour))
			require.NoError(t, f.store.SaveSession(loginResponse(t, fresh)))
			f.cart.AddItem(cart.Item{ProductID: 1, Name: "Baguette", UnitPrice: 3500})

			f.store.Logout(context.Background())

			require.Equal(t, 1, f.backend.calls)
			require.Equal(t, "ana@oldbaker.com", f.backend.email)
			require.Equal(t, fresh, f.backend.rawToken)

			require.Nil(t, f.store.CurrentUser())
			require.False(t, f.store.IsValid())
			_, ok := f.storage.Get(storage.AuthTokenKey)
			require.False(t, ok)
			_, ok = f.storage.Get(storage.RefreshTokenKey)
			require.False(t, ok)
			require.Empty(t, f.cart.Items())
		})
	}
}

func TestLogoutWithoutSessionSkipsServerCall(t *testing.T) {
	f := setupFixture(t)
	f.store.Initialize()

	f.store.Logout(context.Background())
	require.Zero(t, f.backend.calls)
	require.Nil(t, f.store.CurrentUser())
}

func TestClearLocalAuthSkipsServerAndCart(t *testing.T) {
	f := setupFixture(t)
	f.store.Initialize()
	require.NoError(t, f.store.SaveSession(loginResponse(t, tokenWithExpiry(t, time.Now().Add(time.Hour)))))
	f.cart.AddItem(cart.Item{ProductID: 1, Name: "Baguette", UnitPrice: 3500})

	f.store.ClearLocalAuth()

	require.Zero(t, f.backend.calls)
	require.Nil(t, f.store.CurrentUser())
	require.False(t, f.store.IsValid())
	// The cart is only cleared by the full logout path.
	require.Len(t, f.cart.Items(), 1)
}

func TestSubscribersSeeSessionChanges(t *testing.T) {
	f := setupFixture(t)

	var events []*api.User
	unsubscribe := f.store.Subscribe(func(user *api.User) { events = append(events, user) })

	f.store.Initialize()
	require.Len(t, events, 1)
	require.Nil(t, events[0])

	require.NoError(t, f.store.SaveSession(loginResponse(t, tokenWithExpiry(t, time.Now().Add(time.Hour)))))
	require.Len(t, events, 2)
	require.Equal(t, "Ana", events[1].Nombre)

	f.store.Logout(context.Background())
	require.Len(t, events, 3)
	require.Nil(t, events[2])

	unsubscribe()
	f.store.ClearLocalAuth()
	require.Len(t, events, 3)
}

func TestSaveSessionReportsStorageFailure(t *testing.T) {
	st := storefake.NewFakeStore()
	st.FailWrites = true
	store := auth.NewStore(st, &fakeBackend{}, nil)
	store.Initialize()

	err := store.SaveSession(loginResponse(t, tokenWithExpiry(t, time.Now().Add(time.Hour))))
	require.Error(t, err)
	// Degraded storage must not fabricate a logged-in state.
	require.False(t, store.IsValid())
}

// Package app is the composition root: it owns the stores and watchdogs,
// wires them together, and carries the screen-level flows (login variants,
// registration, password reset, OAuth callback) that share the auth store's
// persistence while applying entry-point-specific navigation.
package app

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oldbaker/go-storefront/api"
	"github.com/oldbaker/go-storefront/auth"
	"github.com/oldbaker/go-storefront/cart"
	"github.com/oldbaker/go-storefront/idle"
	"github.com/oldbaker/go-storefront/internal/config"
	"github.com/oldbaker/go-storefront/liveness"
	"github.com/oldbaker/go-storefront/oauthlogin"
	"github.com/oldbaker/go-storefront/orders"
	"github.com/oldbaker/go-storefront/orders/fixturerepo"
	"github.com/oldbaker/go-storefront/storage"
	"github.com/oldbaker/go-storefront/suppliers"
)

// Route names for the client's screens.
const (
	RouteHome     = "home"
	RouteLogin    = "login"
	RouteRegister = "register"
	RouteVerify   = "verify"
	RouteAuxiliar = "auxiliar"
)

// App owns every shared component of the storefront client.
type App struct {
	Config   config.Config
	Storage  storage.Store
	API      *api.Client
	Auth     *auth.Store
	Cart     *cart.Store
	Orders   orders.Repo
	Admin    *suppliers.Service
	Idle     *idle.Watchdog
	Liveness *liveness.Checker

	routeLock      sync.Mutex
	route          string
	sessionExpired bool
}

var _ liveness.Navigator = (*App)(nil)

// New wires the full client. The idle watchdog and liveness checker are
// created stopped; Start arms them.
func New(cfg config.Config, st storage.Store) *App {
	a := &App{
		Config:  cfg,
		Storage: st,
		route:   RouteHome,
	}

	a.API = api.NewClient(cfg.GetAPIBaseURL(), api.WithTimeout(cfg.GetRequestTimeout()))
	a.Cart = cart.New(st)
	a.Auth = auth.NewStore(st, a.API, a.Cart)
	a.API.SetTokenProvider(a.Auth)

	a.Orders = fixturerepo.NewFixtureRepo()
	a.Admin = suppliers.NewService()

	a.Idle = idle.NewWatchdog(cfg.GetIdleTimeout(), func() {
		a.Logout(context.Background())
	})
	a.Liveness = liveness.NewChecker(a.Auth, a, cfg.GetTokenCheckInterval())

	return a
}

// Start reconciles persisted session state and arms the liveness checker
// and the idle watchdog, in that order: nothing may query the session
// before Initialize has run.
func (a *App) Start() {
	a.Auth.Initialize()
	a.Liveness.Start()
	a.Idle.StartWatching()
}

// Stop tears down the timers. Safe to call more than once.
func (a *App) Stop() {
	a.Liveness.Stop()
	a.Idle.StopWatching()
}

// Activity forwards a user input event to the idle watchdog.
func (a *App) Activity() {
	a.Idle.Activity()
}

// CurrentRoute implements liveness.Navigator.
func (a *App) CurrentRoute() string {
	a.routeLock.Lock()
	defer a.routeLock.Unlock()
	return a.route
}

// SetRoute records the active screen.
func (a *App) SetRoute(route string) {
	a.routeLock.Lock()
	defer a.routeLock.Unlock()
	a.route = route
}

// GoToLogin implements liveness.Navigator: the login screen reads the
// sessionExpired flag to explain the forced navigation.
func (a *App) GoToLogin(sessionExpired bool) {
	a.routeLock.Lock()
	defer a.routeLock.Unlock()
	a.route = RouteLogin
	if sessionExpired {
		a.sessionExpired = true
	}
}

// ConsumeSessionExpired returns and clears the expired-session indicator,
// the way the login screen consumes the sessionExpired query parameter.
func (a *App) ConsumeSessionExpired() bool {
	a.routeLock.Lock()
	defer a.routeLock.Unlock()
	expired := a.sessionExpired
	a.sessionExpired = false
	return expired
}

// Login authenticates a customer and lands on the home screen.
func (a *App) Login(ctx context.Context, email, password string) error {
	resp, err := a.API.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.Auth.SaveSession(resp); err != nil {
		return err
	}
	a.SetRoute(RouteHome)
	return nil
}

// WorkerLogin authenticates warehouse/admin staff and lands on the
// back-office dashboard.
func (a *App) WorkerLogin(ctx context.Context, email, password string) error {
	resp, err := a.API.WorkerLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.Auth.SaveSession(resp); err != nil {
		return err
	}
	a.SetRoute(RouteAuxiliar)
	return nil
}

// Register creates an account and stashes the returned user id in the
// pending-verification scratch key for the verify screen.
func (a *App) Register(ctx context.Context, nombre, email, password string) error {
	resp, err := a.API.Register(ctx, api.RegisterRequest{Nombre: nombre, Email: email, Password: password})
	if err != nil {
		return err
	}
	if resp.Data != nil && resp.Data.Usuario != nil {
		a.stashPendingUser(resp.Data.Usuario.ID)
	}
	a.SetRoute(RouteVerify)
	return nil
}

// VerifyPendingUser confirms the emailed code for the user id stashed by
// the register or OAuth flow. The scratch key is consumed either way.
func (a *App) VerifyPendingUser(ctx context.Context, codigo string) error {
	raw, ok := a.Storage.Get(storage.PendingUserIDKey)
	if !ok {
		return auth.NotAuthenticatedErr
	}
	if err := a.Storage.Delete(storage.PendingUserIDKey); err != nil {
		log.Warn().Err(err).Msg("could not remove pending-verification key")
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("corrupt pending-verification id %q", raw)
	}

	resp, err := a.API.VerifyCode(ctx, userID, codigo)
	if err != nil {
		return err
	}
	if err := a.Auth.SaveSession(resp); err != nil {
		return err
	}
	a.SetRoute(RouteHome)
	return nil
}

// BeginPasswordReset starts the forgot-password flow and remembers the
// email in its scratch key until the flow completes.
func (a *App) BeginPasswordReset(ctx context.Context, email string) error {
	if err := a.API.ForgotPassword(ctx, email); err != nil {
		return err
	}
	if err := a.Storage.Set(storage.ResetEmailKey, email); err != nil {
		log.Warn().Err(err).Msg("could not persist reset email")
	}
	return nil
}

// VerifyResetCode confirms the emailed reset code and stashes it for the
// final step.
func (a *App) VerifyResetCode(ctx context.Context, code string) error {
	if err := a.API.VerifyResetCode(ctx, code); err != nil {
		return err
	}
	if err := a.Storage.Set(storage.ResetTokenKey, code); err != nil {
		log.Warn().Err(err).Msg("could not persist reset code")
	}
	return nil
}

// CompletePasswordReset sets the new password for the email stashed by
// BeginPasswordReset and removes the flow's scratch keys.
func (a *App) CompletePasswordReset(ctx context.Context, newPassword string) error {
	email, ok := a.Storage.Get(storage.ResetEmailKey)
	if !ok {
		return auth.NotAuthenticatedErr
	}

	if err := a.API.ResetPassword(ctx, email, newPassword); err != nil {
		return err
	}

	a.clearResetScratch()
	a.SetRoute(RouteLogin)
	return nil
}

// AbandonPasswordReset discards the reset flow's scratch keys.
func (a *App) AbandonPasswordReset() {
	a.clearResetScratch()
}

// HandleOAuthCallback processes the backend's OAuth handoff payload: an
// unverified account is routed to the verify screen with its id stashed; a
// token is saved as a session and lands home.
func (a *App) HandleOAuthCallback(data string) error {
	result := oauthlogin.ParseCallbackData(data)
	if result == nil {
		return fmt.Errorf("no usable user information in OAuth callback")
	}

	if result.NeedsVerification() {
		a.stashPendingUser(result.User.ID)
		a.SetRoute(RouteVerify)
		return nil
	}

	if result.Token != "" {
		if err := a.Auth.SaveSession(&api.AuthResponse{
			Success: true,
			Data:    &api.SessionData{AccessToken: result.Token, Usuario: result.User},
		}); err != nil {
			return err
		}
	}
	a.SetRoute(RouteHome)
	return nil
}

// Logout ends the session (server notify, local clear, cart clear) and
// shows the home screen.
func (a *App) Logout(ctx context.Context) {
	a.Auth.Logout(ctx)
	a.SetRoute(RouteHome)
}

// DeactivateAccount disables the account server-side, then drops the local
// session without a logout call: the server session is already gone.
func (a *App) DeactivateAccount(ctx context.Context) error {
	user := a.Auth.CurrentUser()
	if user == nil {
		return auth.NotAuthenticatedErr
	}
	if err := a.API.DeactivateAccount(ctx, user.ID); err != nil {
		return err
	}
	a.Auth.ClearLocalAuth()
	a.Cart.Clear()
	a.SetRoute(RouteHome)
	return nil
}

func (a *App) stashPendingUser(id int64) {
	if err := a.Storage.Set(storage.PendingUserIDKey, strconv.FormatInt(id, 10)); err != nil {
		log.Warn().Err(err).Msg("could not persist pending-verification id")
	}
}

func (a *App) clearResetScratch() {
	for _, key := range []string{storage.ResetEmailKey, storage.ResetTokenKey} {
		if err := a.Storage.Delete(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not remove reset scratch key")
		}
	}
}

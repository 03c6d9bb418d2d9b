// Package api is the HTTP client for the OldBaker backend. It performs the
// network calls and owns the wire shapes; it never touches session storage,
// which belongs to the auth store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error is a failed backend call. Mensaje carries the server-supplied
// message when one was present.
type Error struct {
	Status  int
	Mensaje string
}

func (e *Error) Error() string {
	if e.Mensaje != "" {
		return e.Mensaje
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TokenProvider supplies the Authorization header value ("Bearer <jwt>")
// for authenticated endpoints. An empty value sends the request anonymous.
type TokenProvider interface {
	AuthHeader() string
}

// Client talks to the OldBaker backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// Option configures optional Client dependencies.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default per-request timeout. Non-positive
// values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenProvider sets the source of bearer tokens for authenticated
// endpoints.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tp
	}
}

// SetTokenProvider sets the source of bearer tokens after construction.
// The auth store needs the client for its logout call, so the two are wired
// in that order.
func (c *Client) SetTokenProvider(tp TokenProvider) {
	c.tokens = tp
}

// NewClient creates a backend client with connection pooling.
func NewClient(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Login authenticates a customer with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authPost(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
}

// WorkerLogin authenticates warehouse and admin staff.
func (c *Client) WorkerLogin(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authPost(ctx, "/api/auth/worker/login", map[string]string{"email": email, "password": password})
}

// Register creates a new customer account. The response carries the user id
// the verification step needs.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authPost(ctx, "/api/auth/register", req)
}

// VerifyCode confirms the emailed 6-digit verification code for a freshly
// registered (or OAuth-created) account.
func (c *Client) VerifyCode(ctx context.Context, userID int64, codigo string) (*AuthResponse, error) {
	return c.authPost(ctx, "/api/auth/verify", map[string]any{"id": userID, "codigo": codigo})
}

// ForgotPassword starts the password-reset flow. The body is the bare email,
// not JSON.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.textPost(ctx, "/api/auth/forgot", email)
}

// VerifyResetCode confirms the emailed reset code. The body is the bare
// code, not JSON.
func (c *Client) VerifyResetCode(ctx context.Context, code string) error {
	return c.textPost(ctx, "/api/auth/reset/verify", code)
}

// ResetPassword sets a new password after a verified reset code.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	_, err := c.authPost(ctx, "/api/auth/reset", map[string]string{"email": email, "newPassword": newPassword})
	return err
}

// Logout notifies the server that the session ends. The flow requires the
// token twice: as the bearer header and again, without its scheme prefix,
// in the body.
func (c *Client) Logout(ctx context.Context, email, rawToken string) error {
	body, err := json.Marshal(map[string]string{"email": email, "token": rawToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/logout", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+rawToken)
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 400 {
		return responseError(resp)
	}
	return nil
}

// Productos fetches the product catalog.
func (c *Client) Productos(ctx context.Context) ([]Producto, error) {
	var productos []Producto
	if err := c.getJSON(ctx, "/api/productos", &productos); err != nil {
		return nil, fmt.Errorf("productos: %w", err)
	}
	return productos, nil
}

// Producto fetches a single catalog entry.
func (c *Client) Producto(ctx context.Context, id int64) (*Producto, error) {
	var producto Producto
	if err := c.getJSON(ctx, fmt.Sprintf("/api/productos/%d", id), &producto); err != nil {
		return nil, fmt.Errorf("producto %d: %w", id, err)
	}
	return &producto, nil
}

// UpdateProfile patches the authenticated user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/api/user/profile", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// DeactivateAccount disables the account server-side. Callers must clear
// the local session afterwards.
func (c *Client) DeactivateAccount(ctx context.Context, userID int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/user/%d/deactivate", userID), nil)
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	return nil
}

// Direccion fetches the authenticated user's delivery address.
func (c *Client) Direccion(ctx context.Context) (string, error) {
	var direccion string
	if err := c.getJSON(ctx, "/api/user/direccion", &direccion); err != nil {
		return "", fmt.Errorf("direccion: %w", err)
	}
	return direccion, nil
}

// authPost posts a JSON body to an auth endpoint and decodes the standard
// envelope, turning an unsuccessful envelope into an *Error.
func (c *Client) authPost(ctx context.Context, path string, body any) (*AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer drainAndClose(resp.Body)

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &Error{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("%s: decode response: %w", path, err)
	}

	if !authResp.Success {
		return nil, &Error{Status: resp.StatusCode, Mensaje: authResp.Mensaje}
	}
	return &authResp, nil
}

// textPost posts a bare string body, as the reset-flow endpoints expect.
func (c *Client) textPost(ctx context.Context, path, body string) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 400 {
		return responseError(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.tokens != nil {
		if header := c.tokens.AuthHeader(); header != "" {
			req.Header.Set("Authorization", header)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 400 {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// responseError builds an *Error, preferring a server-supplied mensaje over
// the bare status code.
func responseError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	var envelope struct {
		Mensaje string `json:"mensaje"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Mensaje = envelope.Mensaje
	}
	return apiErr
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

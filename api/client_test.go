package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/api"
)

type staticTokens string

func (s staticTokens) AuthHeader() string { return string(s) }

func TestLoginDecodesSessionData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ana@oldbaker.com", body["email"])

		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			Success: true,
			Data: &api.SessionData{
				AccessToken: "jwt-a",
				TokenType:   "Bearer",
				Usuario:     &api.User{ID: 1, Email: "ana@oldbaker.com", Nombre: "Ana", Rol: "CLIENTE"},
			},
		})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	resp, err := client.Login(context.Background(), "ana@oldbaker.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt-a", resp.Data.AccessToken)
	require.Equal(t, "Ana", resp.Data.Usuario.Nombre)
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.AuthResponse{Success: false, Mensaje: "credenciales inválidas"})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	_, err := client.Login(context.Background(), "ana@oldbaker.com", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "credenciales inválidas", apiErr.Mensaje)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestLogoutSendsTokenTwice(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	require.NoError(t, client.Logout(context.Background(), "ana@oldbaker.com", "jwt-a"))
	require.Equal(t, "Bearer jwt-a", gotAuth)
	require.Equal(t, "jwt-a", gotBody["token"])
	require.Equal(t, "ana@oldbaker.com", gotBody["email"])
}

func TestForgotPasswordSendsPlainText(t *testing.T) {
	var gotBody string
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	require.NoError(t, client.ForgotPassword(context.Background(), "ana@oldbaker.com"))
	require.Equal(t, "ana@oldbaker.com", gotBody)
	require.Equal(t, "text/plain", gotType)
}

func TestProductosList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/productos", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]api.Producto{
			{IDProducto: 1, Nombre: "Baguette", CostoUnitario: 3500},
			{IDProducto: 2, Nombre: "Croissant", CostoUnitario: 4500},
		})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	productos, err := client.Productos(context.Background())
	require.NoError(t, err)
	require.Len(t, productos, 2)
	require.Equal(t, "Baguette", productos[0].Nombre)
}

func TestAuthenticatedCallsCarryBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.User{ID: 1, Nombre: "Ana B"})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.WithTokenProvider(staticTokens("Bearer jwt-a")))
	nombre := "Ana B"
	user, err := client.UpdateProfile(context.Background(), api.ProfileUpdate{Nombre: &nombre})
	require.NoError(t, err)
	require.Equal(t, "Bearer jwt-a", gotAuth)
	require.Equal(t, "Ana B", user.Nombre)
}

func TestDeactivateAccount(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, api.WithTokenProvider(staticTokens("Bearer jwt-a")))
	require.NoError(t, client.DeactivateAccount(context.Background(), 7))
	require.Equal(t, "/api/user/7/deactivate", gotPath)
}

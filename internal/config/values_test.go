package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/internal/config"
)

func TestDefaults(t *testing.T) {
	c := config.New()

	require.Equal(t, "OldBaker", c.GetAppName())
	require.Equal(t, "http://localhost:8080", c.GetAPIBaseURL())
	require.Equal(t, ":8080", c.GetListenPort())
	require.Equal(t, time.Hour, c.GetTokenTTL())
	require.Equal(t, 60*time.Second, c.GetIdleTimeout())
	require.Equal(t, 5*time.Minute, c.GetTokenCheckInterval())
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.NotEmpty(t, c.GetStoragePath())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: OldBaker Dev
api_base_url: https://api.oldbaker.com
idle_timeout: 90s
token_check_period: 2m
server:
  port: ":9090"
oauth:
  client_id: client-123
`), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "OldBaker Dev", c.GetAppName())
	require.Equal(t, "https://api.oldbaker.com", c.GetAPIBaseURL())
	require.Equal(t, 90*time.Second, c.GetIdleTimeout())
	require.Equal(t, 2*time.Minute, c.GetTokenCheckInterval())
	require.Equal(t, "client-123", c.GetOAuthClientID())
	require.Equal(t, ":9090", c.GetListenPort())
	// Untouched values keep their defaults.
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.Equal(t, "https://accounts.google.com", c.GetOAuthIssuer())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "OldBaker", c.GetAppName())
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: [unclosed"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestBadDurationFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idle_timeout: sixty\ntoken_check_period: -5m\n"), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 60*time.Second, c.GetIdleTimeout())
	require.Equal(t, 5*time.Minute, c.GetTokenCheckInterval())
}

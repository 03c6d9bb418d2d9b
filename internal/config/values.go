package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oldbaker/go-storefront/internal/utils"
)

const (
	appNameVar     = "APP_NAME"
	apiBaseURLVar  = "API_BASE_URL"
	storagePathVar = "STORAGE_PATH"
)

// fileOverrides is the optional YAML config file. Zero values fall back to
// environment variables and built-in defaults.
type fileOverrides struct {
	AppName          string `yaml:"app_name"`
	APIBaseURL       string `yaml:"api_base_url"`
	StoragePath      string `yaml:"storage_path"`
	RequestTimeout   string `yaml:"request_timeout"`
	IdleTimeout      string `yaml:"idle_timeout"`
	TokenCheckPeriod string `yaml:"token_check_period"`
	Server           struct {
		Port        string `yaml:"port"`
		TokenSecret string `yaml:"token_secret"`
		TokenTTL    string `yaml:"token_ttl"`
	} `yaml:"server"`
	OAuth struct {
		Issuer       string `yaml:"issuer"`
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RedirectURL  string `yaml:"redirect_url"`
	} `yaml:"oauth"`
}

type values struct {
	appName          string
	env              string
	apiBaseURL       string
	storagePath      string
	requestTimeout   time.Duration
	idleTimeout      time.Duration
	tokenCheckPeriod time.Duration

	listenPort  string
	tokenSecret string
	tokenTTL    time.Duration

	oauthIssuer       string
	oauthClientID     string
	oauthClientSecret string
	oauthRedirectURL  string
}

var _ Config = values{}

// New resolves configuration from environment variables and defaults.
func New() Config {
	return fromOverrides(fileOverrides{})
}

// Load resolves configuration from a YAML file layered over environment
// variables and defaults. A missing file is not an error; a malformed one
// is.
func Load(path string) (Config, error) {
	var overrides fileOverrides

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	return fromOverrides(overrides), nil
}

func fromOverrides(o fileOverrides) values {
	return values{
		appName:          utils.FirstNonEmpty(o.AppName, os.Getenv(appNameVar), "OldBaker"),
		env:              utils.FirstNonEmpty(os.Getenv("ENV"), "DEV"),
		apiBaseURL:       utils.FirstNonEmpty(o.APIBaseURL, os.Getenv(apiBaseURLVar), "http://localhost:8080"),
		storagePath:      utils.FirstNonEmpty(o.StoragePath, os.Getenv(storagePathVar), defaultStoragePath()),
		requestTimeout:   durationOf(o.RequestTimeout, 30*time.Second),
		idleTimeout:      durationOf(o.IdleTimeout, 60*time.Second),
		tokenCheckPeriod: durationOf(o.TokenCheckPeriod, 5*time.Minute),

		listenPort:  utils.FirstNonEmpty(o.Server.Port, os.Getenv("PORT"), ":8080"),
		tokenSecret: utils.FirstNonEmpty(o.Server.TokenSecret, os.Getenv("TOKEN_SECRET"), "oldbaker-dev-secret"),
		tokenTTL:    durationOf(o.Server.TokenTTL, time.Hour),

		oauthIssuer:       utils.FirstNonEmpty(o.OAuth.Issuer, os.Getenv("OAUTH_ISSUER"), "https://accounts.google.com"),
		oauthClientID:     utils.FirstNonEmpty(o.OAuth.ClientID, os.Getenv("OAUTH_CLIENT_ID")),
		oauthClientSecret: utils.FirstNonEmpty(o.OAuth.ClientSecret, os.Getenv("OAUTH_CLIENT_SECRET")),
		oauthRedirectURL:  utils.FirstNonEmpty(o.OAuth.RedirectURL, os.Getenv("OAUTH_REDIRECT_URL")),
	}
}

func (v values) GetAppName() string                   { return v.appName }
func (v values) GetEnv() string                       { return v.env }
func (v values) GetStoragePath() string               { return v.storagePath }
func (v values) GetAPIBaseURL() string                { return v.apiBaseURL }
func (v values) GetRequestTimeout() time.Duration     { return v.requestTimeout }
func (v values) GetIdleTimeout() time.Duration        { return v.idleTimeout }
func (v values) GetTokenCheckInterval() time.Duration { return v.tokenCheckPeriod }
func (v values) GetListenPort() string                { return v.listenPort }
func (v values) GetTokenSecret() string               { return v.tokenSecret }
func (v values) GetTokenTTL() time.Duration           { return v.tokenTTL }
func (v values) GetOAuthIssuer() string               { return v.oauthIssuer }
func (v values) GetOAuthClientID() string             { return v.oauthClientID }
func (v values) GetOAuthClientSecret() string         { return v.oauthClientSecret }
func (v values) GetOAuthRedirectURL() string          { return v.oauthRedirectURL }

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.json"
	}
	return filepath.Join(home, ".oldbaker", "storefront.json")
}

func durationOf(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	OAuthConfig
	ServerConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetStoragePath() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

// SessionConfig carries the session-liveness timings. The defaults (60s
// idle, 5m check interval) match the web client's literal values.
type SessionConfig interface {
	GetIdleTimeout() time.Duration
	GetTokenCheckInterval() time.Duration
}

// ServerConfig configures the bundled development backend.
type ServerConfig interface {
	GetListenPort() string
	GetTokenSecret() string
	GetTokenTTL() time.Duration
}

// OAuthConfig describes the Google sign-in client registration.
type OAuthConfig interface {
	GetOAuthIssuer() string
	GetOAuthClientID() string
	GetOAuthClientSecret() string
	GetOAuthRedirectURL() string
}

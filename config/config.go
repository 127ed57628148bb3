package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: Backend REST API client configuration
//   - redis.go: Session storage configuration
//   - http.go: HTTP server configuration
//   - session.go: Session lifetime and login throttling
//   - observability.go: Metrics emission
type AppConfig struct {
	// IsDev controls development mode behavior (template error details, disk templates).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel selects the slog level ("debug", "info", "warn", "error").
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Backend BackendConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`
	HTTP    HTTPConfig
	Session SessionConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Redis.Sanitize()
	c.Session.Sanitize()
	c.Observability.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.detectDevMode()
}

// detectDevMode checks DEV, NODE_ENV and APP_ENV.
// NODE_ENV is kept as a fallback because the static asset tooling sets it.
func (c *AppConfig) detectDevMode() {
	if c.IsDev {
		return
	}
	for _, key := range []string{"NODE_ENV", "APP_ENV"} {
		v := strings.ToLower(os.Getenv(key))
		if v == "development" || v == "dev" {
			c.IsDev = true
			return
		}
	}
}

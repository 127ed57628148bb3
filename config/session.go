package config

import (
	"strings"
	"time"
)

const (
	minSessionTTL     = 5 * time.Minute
	defaultSessionTTL = 8 * time.Hour
)

// SessionConfig controls server-side session lifetime and login throttling.
type SessionConfig struct {
	// TTL is how long a dashboard session lives after login.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// KeyPrefix namespaces every Redis key written by the dashboard.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"painel:"`

	// LoginRatePerMinute is the sustained number of login attempts allowed per client IP.
	LoginRatePerMinute int `env:"LOGIN_RATE_LIMIT" envDefault:"5"`

	// LoginBurst is the number of attempts allowed back to back.
	LoginBurst int `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

// Sanitize enforces a minimum TTL and non-negative limits.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if s.TTL < minSessionTTL {
		s.TTL = minSessionTTL
	}
	s.KeyPrefix = strings.TrimSpace(s.KeyPrefix)
	if s.KeyPrefix != "" && !strings.HasSuffix(s.KeyPrefix, ":") {
		s.KeyPrefix += ":"
	}
	if s.LoginRatePerMinute < 0 {
		s.LoginRatePerMinute = 0
	}
	if s.LoginBurst < 1 {
		s.LoginBurst = 1
	}
}

// LoginLimitEnabled reports whether login attempts are throttled.
func (s *SessionConfig) LoginLimitEnabled() bool {
	return s.LoginRatePerMinute > 0
}

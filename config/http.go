package config

import "strings"

// HTTPConfig configures the listener and the cookies painel sets.
type HTTPConfig struct {
	Addr    string `env:"HTTP_ADDR"    envDefault:":8080"`
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain scopes the session, CSRF and flash cookies. Empty means host-only.
	CookieDomain string `env:"APP_COOKIE_DOMAIN"`

	// TrustedProxies lists the proxies (IPs or CIDRs) allowed to set
	// X-Forwarded-For. Empty: the TCP peer is the client.
	TrustedProxies []string `env:"HTTP_TRUSTED_PROXIES"`

	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"true"`
	CompressionLevel   int  `env:"HTTP_COMPRESSION_LEVEL"   envDefault:"5"` // gzip, 1..9
}

func (h *HTTPConfig) Sanitize() {
	if h.Addr = strings.TrimSpace(h.Addr); h.Addr == "" {
		h.Addr = ":8080"
	}
	h.BaseURL = strings.TrimRight(strings.TrimSpace(h.BaseURL), "/")
	h.CookieDomain = strings.TrimSpace(h.CookieDomain)
	h.CompressionLevel = min(max(h.CompressionLevel, 1), 9)
}

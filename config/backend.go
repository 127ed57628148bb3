package config

import (
	"strings"
	"time"
)

const (
	defaultBackendAPIURL   = "http://localhost:5000/api"
	defaultBackendAssetURL = "http://localhost:5000"
	defaultBackendTimeout  = 15 * time.Second
)

// BackendConfig points the dashboard at the business REST API it renders.
type BackendConfig struct {
	// APIURL is the API root every request path is appended to.
	APIURL string `env:"BACKEND_API_URL" envDefault:"http://localhost:5000/api"`

	// AssetURL is the public origin serving uploaded files (company logo).
	AssetURL string `env:"BACKEND_ASSET_URL" envDefault:"http://localhost:5000"`

	// Timeout bounds a single backend call, including reading the body.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

// Sanitize trims trailing slashes and restores defaults for empty values.
func (b *BackendConfig) Sanitize() {
	b.APIURL = strings.TrimRight(strings.TrimSpace(b.APIURL), "/")
	if b.APIURL == "" {
		b.APIURL = defaultBackendAPIURL
	}
	b.AssetURL = strings.TrimRight(strings.TrimSpace(b.AssetURL), "/")
	if b.AssetURL == "" {
		b.AssetURL = defaultBackendAssetURL
	}
	if b.Timeout <= 0 {
		b.Timeout = defaultBackendTimeout
	}
}

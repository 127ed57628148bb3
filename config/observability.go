package config

import "strings"

const (
	defaultMetricsNamespace = "painel"
	defaultMetricsPath      = "/metrics"
)

// ObservabilityConfig groups configuration that controls metrics exposure.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
}

// ObservabilityMetricsConfig controls the Prometheus collectors and their scrape endpoint.
type ObservabilityMetricsConfig struct {
	Enabled bool `env:"OBSERVABILITY_METRICS_ENABLED" envDefault:"false"`
	// Namespace prefixes every metric name (painel_backend_requests_total).
	Namespace string `env:"OBSERVABILITY_METRICS_NAMESPACE" envDefault:"painel"`
	// Path is where the scrape endpoint is mounted.
	Path string `env:"OBSERVABILITY_METRICS_PATH" envDefault:"/metrics"`
}

// Sanitize keeps the namespace to characters Prometheus accepts in metric names.
func (c *ObservabilityMetricsConfig) Sanitize() {
	ns := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r == '.', r == '-', r == ' ':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(c.Namespace))
	ns = strings.Trim(ns, "_")
	if ns == "" || (ns[0] >= '0' && ns[0] <= '9') {
		ns = defaultMetricsNamespace
	}
	c.Namespace = ns

	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" || !strings.HasPrefix(c.Path, "/") {
		c.Path = defaultMetricsPath
	}
}

package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	t.Setenv("APP_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Backend.APIURL != "http://localhost:5000/api" {
		t.Errorf("Backend.APIURL = %q", cfg.Backend.APIURL)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("Backend.Timeout = %s", cfg.Backend.Timeout)
	}
	if cfg.Session.TTL != 8*time.Hour {
		t.Errorf("Session.TTL = %s", cfg.Session.TTL)
	}
	if cfg.Session.KeyPrefix != "painel:" {
		t.Errorf("Session.KeyPrefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Redis.Mode() != "direct" {
		t.Errorf("Redis.Mode() = %q", cfg.Redis.Mode())
	}
	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND_API_URL", " https://api.example.com/api/ ")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "1m")
	t.Setenv("SESSION_KEY_PREFIX", "tenant")
	t.Setenv("REDIS_USE_CLUSTER", "true")
	t.Setenv("REDIS_CLUSTER_NODES", "a:1, ,b:2")
	t.Setenv("LOG_LEVEL", " DEBUG ")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.APIURL != "https://api.example.com/api" {
		t.Errorf("Backend.APIURL = %q", cfg.Backend.APIURL)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("Backend.Timeout = %s", cfg.Backend.Timeout)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Errorf("Session.TTL should be clamped to 5m, got %s", cfg.Session.TTL)
	}
	if cfg.Session.KeyPrefix != "tenant:" {
		t.Errorf("Session.KeyPrefix = %q", cfg.Session.KeyPrefix)
	}
	if cfg.Redis.Mode() != "cluster" {
		t.Errorf("Redis.Mode() = %q", cfg.Redis.Mode())
	}
	if len(cfg.Redis.ClusterNodes) != 2 {
		t.Errorf("ClusterNodes = %v", cfg.Redis.ClusterNodes)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	t.Setenv("APP_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatal("expected APP_ENV=development to enable dev mode")
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int
	}{
		{name: "below range", level: 0, want: 1},
		{name: "in range", level: 6, want: 6},
		{name: "above range", level: 12, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := HTTPConfig{CompressionLevel: tt.level, BaseURL: "https://painel.example.com/"}
			cfg.Sanitize()
			if cfg.CompressionLevel != tt.want {
				t.Errorf("CompressionLevel = %d, want %d", cfg.CompressionLevel, tt.want)
			}
			if cfg.BaseURL != "https://painel.example.com" {
				t.Errorf("BaseURL = %q", cfg.BaseURL)
			}
			if cfg.Addr != ":8080" {
				t.Errorf("Addr = %q", cfg.Addr)
			}
		})
	}
}

func TestRedisConfig_SanitizeDisablesEmptyTopologies(t *testing.T) {
	cfg := RedisConfig{UseSentinel: true, SentinelNodes: []string{" ", ""}}
	cfg.Sanitize()
	if cfg.UseSentinel {
		t.Fatal("sentinel without nodes should be disabled")
	}
	if cfg.Mode() != "direct" {
		t.Fatalf("Mode() = %q", cfg.Mode())
	}
}

func TestSessionConfig_LoginLimit(t *testing.T) {
	cfg := SessionConfig{LoginRatePerMinute: -1, LoginBurst: 0}
	cfg.Sanitize()
	if cfg.LoginLimitEnabled() {
		t.Error("negative rate should disable throttling")
	}
	if cfg.LoginBurst != 1 {
		t.Errorf("LoginBurst = %d, want 1", cfg.LoginBurst)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Namespace: " ", Path: "metrics"}
	cfg.Sanitize()
	if cfg.Namespace != "painel" {
		t.Fatalf("Namespace = %q", cfg.Namespace)
	}
	if cfg.Path != "/metrics" {
		t.Fatalf("Path = %q", cfg.Path)
	}

	cfg = ObservabilityMetricsConfig{Namespace: ".minha-agencia.app!", Path: " /internal/metrics "}
	cfg.Sanitize()
	if cfg.Namespace != "minha_agencia_app" {
		t.Fatalf("Namespace = %q", cfg.Namespace)
	}
	if cfg.Path != "/internal/metrics" {
		t.Fatalf("Path = %q", cfg.Path)
	}

	cfg = ObservabilityMetricsConfig{Namespace: "9lives"}
	cfg.Sanitize()
	if cfg.Namespace != "painel" {
		t.Fatalf("leading digit should fall back, got %q", cfg.Namespace)
	}
}

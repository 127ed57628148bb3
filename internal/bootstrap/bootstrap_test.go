package bootstrap

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techmidia/painel/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogLevel("info") })

	SetLogLevel("debug")
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
	SetLogLevel("nonsense")
	assert.Equal(t, slog.LevelInfo, logLevel.Level())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv("BACKEND_API_URL", "https://api.example.com/api/")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("REDIS_URI", "redis://cache:6379/1")
	t.Setenv("LOGIN_RATE_LIMIT", "10")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.Backend.APIURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URI)
	assert.Equal(t, 10, cfg.Session.LoginRatePerMinute)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.HTTP.TrustedProxies)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_TTL", "forever")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestRedactAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", redactAddr("localhost:6379"))
	assert.NotContains(t, redactAddr("redis://:segredo@cache:6379/0"), "segredo")
	assert.Equal(t, "cache:6379", redactAddr("user:segredo@cache:6379"))
}

func TestNewRedisClient_Modes(t *testing.T) {
	_, _, err := newRedisClient(config.RedisConfig{UseCluster: true})
	require.Error(t, err)

	_, _, err = newRedisClient(config.RedisConfig{UseSentinel: true})
	require.Error(t, err)

	_, _, err = newRedisClient(config.RedisConfig{URI: " "})
	require.Error(t, err)

	_, _, err = newRedisClient(config.RedisConfig{URI: "redis://cache:notaport"})
	require.Error(t, err)

	client, addr, err := newRedisClient(config.RedisConfig{URI: "redis://cache:6379/2"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.Equal(t, "redis://cache:6379/2", addr)

	sentinel, addr, err := newRedisClient(config.RedisConfig{
		UseSentinel:        true,
		SentinelNodes:      []string{"s1:26379"},
		SentinelMasterName: "mymaster",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sentinel.Close() })
	assert.Equal(t, "sentinel:mymaster", addr)
}

func TestNewServices_RequiresDeps(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{Config: &config.AppConfig{}})
	require.Error(t, err)
}

// unreachableRedis returns a client whose pings fail fast.
func unreachableRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testAppConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Backend: config.BackendConfig{APIURL: "http://127.0.0.1:1/api", Timeout: time.Second},
		Session: config.SessionConfig{TTL: time.Hour, KeyPrefix: "painel:test:"},
	}
	cfg.Sanitize()
	return cfg
}

func TestBuildHandler_HealthReportsRedis(t *testing.T) {
	cfg := testAppConfig()
	client := unreachableRedis(t)
	services, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: client, Logger: slog.Default()})
	require.NoError(t, err)

	handler, err := BuildHandler(&HTTPServerConfig{Config: cfg, Services: services, RedisClient: client})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis"`)
}

func TestBuildHandler_RequiresConfig(t *testing.T) {
	_, err := BuildHandler(nil)
	require.Error(t, err)
	_, err = BuildHandler(&HTTPServerConfig{})
	require.Error(t, err)
}

func TestNewHTTPServer_DefaultAddr(t *testing.T) {
	srv := NewHTTPServer("", http.NotFoundHandler())
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, serverIdleTimeout, srv.IdleTimeout)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHTTPServer(ln.Addr().String(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln, slog.Default()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestBuildHandler_ServesMetricsWhenEnabled(t *testing.T) {
	cfg := testAppConfig()
	cfg.Observability.Metrics.Enabled = true
	client := unreachableRedis(t)
	services, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: client, Logger: slog.Default()})
	require.NoError(t, err)
	require.NotNil(t, services.Observability.Metrics)

	handler, err := BuildHandler(&HTTPServerConfig{Config: cfg, Services: services, RedisClient: client})
	require.NoError(t, err)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `painel_http_requests_total{method="GET",route="healthz",status="503"} 1`)
}

func TestNewServices_MetricsDisabledByDefault(t *testing.T) {
	services, err := NewServices(&ServiceDeps{Config: testAppConfig(), RedisClient: unreachableRedis(t)})
	require.NoError(t, err)
	assert.Nil(t, services.Observability.Metrics)
}

func TestConnectRedis(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := ConnectRedis(t.Context(), RedisOptions{Config: config.RedisConfig{URI: srv.Addr()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Set(t.Context(), "k", "v", 0).Err())
	srv.CheckGet(t, "k", "v")

	srv.RequireAuth("segredo")
	_, err = ConnectRedis(t.Context(), RedisOptions{Config: config.RedisConfig{URI: srv.Addr()}})
	require.Error(t, err)

	authed, err := ConnectRedis(t.Context(), RedisOptions{Config: config.RedisConfig{URI: "redis://:segredo@" + srv.Addr() + "/0"}})
	require.NoError(t, err)
	_ = authed.Close()
}

func TestBuildHandler_HealthyRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testAppConfig()
	services, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: client})
	require.NoError(t, err)
	handler, err := BuildHandler(&HTTPServerConfig{Config: cfg, Services: services, RedisClient: client})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBuildHandler_RejectsBadTrustedProxy(t *testing.T) {
	cfg := testAppConfig()
	cfg.HTTP.TrustedProxies = []string{"not-an-ip"}
	services, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: unreachableRedis(t)})
	require.NoError(t, err)

	_, err = BuildHandler(&HTTPServerConfig{Config: cfg, Services: services})
	require.ErrorContains(t, err, "HTTP_TRUSTED_PROXIES")
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/techmidia/painel/config"
	httpx "github.com/techmidia/painel/internal/http"
	"github.com/techmidia/painel/internal/markdown"
)

const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 30 * time.Second
	serverIdleTimeout  = 120 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildHandler assembles the router and its middleware from the services.
func BuildHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	health := map[string]httpx.Pinger{}
	if cfg.RedisClient != nil {
		client := cfg.RedisClient
		health["redis"] = httpx.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	var compression *httpx.CompressionConfig
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		compression = &httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel, MinSize: 1024, Logger: logger}
	}

	var limiter *httpx.LoginLimiter
	if appCfg.Session.LoginLimitEnabled() {
		limiter = httpx.NewLoginLimiter(appCfg.Session.LoginRatePerMinute, appCfg.Session.LoginBurst)
	}

	proxies, err := httpx.ParseTrustedProxies(appCfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
	}

	var metricsExporter httpx.MetricsExporter
	if reg := cfg.Services.Observability.Metrics; reg != nil {
		metricsExporter = reg
	}

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Auth:           cfg.Services.Auth,
		Dashboard:      cfg.Services.Dashboard,
		Resources:      cfg.Services.Resources,
		Assistant:      cfg.Services.Assistant,
		Tenant:         cfg.Services.Tenant,
		Health:         health,
		Limiter:        limiter,
		TrustedProxies: proxies,
		Compression:    compression,
		Metrics:        metricsExporter,
		MetricsPath:    appCfg.Observability.Metrics.Path,
		AssetBase:      appCfg.Backend.AssetURL,
		CookieDomain:   appCfg.HTTP.CookieDomain,
		Markdown:       markdown.New(),
		IsDev:          appCfg.IsDev,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return handler, nil
}

// NewHTTPServer wraps handler with the server timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       serverReadTimeout,
		ReadHeaderTimeout: serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}
}

// Serve runs server on ln until ctx is done, then shuts it down gracefully.
// A listener failure cancels the shutdown watcher and is returned.
func Serve(ctx context.Context, server *http.Server, ln net.Listener, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "starting HTTP server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		// The parent context is already done; shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

// ListenAndServe opens the server address and calls Serve.
func ListenAndServe(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}
	return Serve(ctx, server, ln, logger)
}

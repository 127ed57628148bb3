package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/techmidia/painel/config"
	redisadapter "github.com/techmidia/painel/internal/adapters/redis"
	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/observability/metrics"
	"github.com/techmidia/painel/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Backend     *apiclient.Client
	Sessions    *redisadapter.SessionStore
	Transcripts *redisadapter.TranscriptStore

	Auth      *service.AuthService
	Dashboard *service.DashboardService
	Resources *service.ResourceService
	Assistant *service.AssistantService
	Tenant    *service.TenantService

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
// Metrics is nil when metrics are disabled.
type ObservabilityContainer struct {
	Metrics       *metrics.Registry
	MetricsConfig config.ObservabilityMetricsConfig
	Backend       apiclient.Observer
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the backend client, the Redis stores and the services built on them.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	if deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("service deps require a redis client")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	obs := buildObservability(logger, cfg.Observability)

	backend, err := apiclient.New(apiclient.Config{
		BaseURL:  cfg.Backend.APIURL,
		Timeout:  cfg.Backend.Timeout,
		Logger:   logger.With("component", "backend"),
		Observer: obs.Backend,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("backend client: %w", err)
	}

	sessions := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, cfg.Session.KeyPrefix)
	transcripts := redisadapter.NewTranscriptStore(deps.RedisClient, cfg.Session.KeyPrefix)

	return ServiceContainer{
		Backend:     backend,
		Sessions:    sessions,
		Transcripts: transcripts,
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Backend: backend,
			Stores:  service.AuthStores{Sessions: sessions, Transcripts: transcripts},
			Settings: service.AuthSettings{
				TTL:    cfg.Session.TTL,
				Logger: logger,
			},
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{Backend: backend}),
		Resources: service.NewResourceService(service.ResourceServiceOptions{Backend: backend}),
		Assistant: service.NewAssistantService(service.AssistantServiceOptions{
			Backend:     backend,
			Transcripts: transcripts,
			Logger:      logger,
		}),
		Tenant:        service.NewTenantService(service.TenantServiceOptions{Backend: backend}),
		Observability: obs,
	}, nil
}

// buildObservability creates the Prometheus registry when metrics are enabled.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	metricsCfg := cfg.Metrics
	if !metricsCfg.Enabled {
		return ObservabilityContainer{MetricsConfig: metricsCfg, Backend: apiclient.NopObserver{}}
	}

	registry := metrics.NewRegistry(metricsCfg.Namespace, true)
	logger.Info("prometheus metrics enabled", "namespace", metricsCfg.Namespace, "path", metricsCfg.Path)
	return ObservabilityContainer{
		Metrics:       registry,
		MetricsConfig: metricsCfg,
		Backend:       registry.Backend(),
	}
}

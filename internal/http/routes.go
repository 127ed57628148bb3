package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/netip"
	"os"
	"time"

	painel "github.com/techmidia/painel"
	"github.com/techmidia/painel/internal/markdown"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth      AuthServiceInterface
	Dashboard DashboardLoader
	Resources ResourceLister
	Assistant AssistantChat
	Tenant    TenantSettings

	// Health checks reported by /healthz, keyed by name.
	Health map[string]Pinger
	// Limiter throttles POST /login; nil disables throttling.
	Limiter *LoginLimiter
	// TrustedProxies may set X-Forwarded-For. Empty means the TCP peer is the client.
	TrustedProxies []netip.Prefix
	// Compression enables gzip when set.
	Compression *CompressionConfig
	// Metrics, when set, instruments every request and serves the scrape
	// endpoint at MetricsPath (default /metrics).
	Metrics     MetricsExporter
	MetricsPath string

	AssetBase    string
	CookieDomain string

	// TemplateFS and StaticFS override the embedded or on-disk files (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS
	Markdown   *markdown.Renderer
	Now        func() time.Time

	IsDev  bool         // Development mode: templates and assets read from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// MetricsExporter instruments requests and serves the collected metrics.
type MetricsExporter interface {
	Handler() http.Handler
	Instrument(skipPath string) func(http.Handler) http.Handler
}

const defaultMetricsPath = "/metrics"

// NewRouter creates the HTTP handler with all routes and the middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		return nil, errors.New("router requires the auth service")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := resolveFS(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Markdown:   services.Markdown,
		Now:        services.Now,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	ui := &UIHandlers{
		T:            tr,
		Auth:         services.Auth,
		Dashboard:    services.Dashboard,
		Resources:    services.Resources,
		Assistant:    services.Assistant,
		Tenant:       services.Tenant,
		AssetBase:    services.AssetBase,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       logger,
	}
	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		T:            tr,
		Limiter:      services.Limiter,
		CookieDomain: services.CookieDomain,
		AssetBase:    services.AssetBase,
		IsDev:        services.IsDev,
		Logger:       logger,
	}
	health := &HealthHandlers{Checks: services.Health, Logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", health.Health)
	mux.HandleFunc("HEAD /healthz", health.Health)
	mux.Handle("GET /static/", staticHandler(staticFS, services.IsDev))
	registerAuthRoutes(mux, authHandlers)
	registerUIRoutes(mux, ui, RequireSession(services.Auth, services.CookieDomain, logger))
	mux.Handle("/", &notFoundHandler{T: tr})

	middlewares := []func(http.Handler) http.Handler{Recover(logger), ClientIP(services.TrustedProxies)}
	if services.Metrics != nil {
		path := services.MetricsPath
		if path == "" {
			path = defaultMetricsPath
		}
		mux.Handle("GET "+path, services.Metrics.Handler())
		middlewares = append(middlewares, services.Metrics.Instrument(path))
	}
	middlewares = append(middlewares, Logging(logger), Toasts())
	if services.Compression != nil {
		cfg := *services.Compression
		if cfg.Logger == nil {
			cfg.Logger = logger
		}
		middlewares = append(middlewares, Compression(cfg))
	}
	middlewares = append(middlewares,
		BrowserDetection(),
		CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain}),
	)
	return Chain(mux, middlewares...), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
}

func registerUIRoutes(mux *http.ServeMux, ui *UIHandlers, requireSession func(http.Handler) http.Handler) {
	protect := func(f http.HandlerFunc) http.Handler { return requireSession(f) }

	assistantHandlers := &AssistantHandlers{UIHandlers: ui}
	settingsHandlers := &SettingsHandlers{UIHandlers: ui}
	accountHandlers := &AccountHandlers{UIHandlers: ui}
	exportHandlers := &ExportHandlers{UIHandlers: ui}

	mux.Handle("GET /{$}", protect(ui.Index))
	mux.Handle("GET /app/{page}", protect(ui.Navigate))
	mux.Handle("GET /app/{page}/export.xlsx", protect(exportHandlers.Export))
	mux.Handle("POST /app/assistente-ia/perguntas", protect(assistantHandlers.Ask))
	mux.Handle("POST /app/configuracoes", protect(settingsHandlers.Save))
	mux.Handle("GET /app/configuracoes/cores-padrao", protect(settingsHandlers.ResetColors))
	mux.Handle("POST /app/senha", protect(accountHandlers.ChangePassword))
}

// resolveFS picks the template and static filesystems: explicit overrides
// first, then disk in dev mode, then the embedded copies.
func resolveFS(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS(StaticPathFromRoot)
		}
		return templateFS, staticFS, nil
	}

	var err error
	if templateFS == nil {
		if templateFS, err = fs.Sub(painel.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded templates: %w", err)
		}
	}
	if staticFS == nil {
		if staticFS, err = fs.Sub(painel.StaticFS, StaticPathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded static files: %w", err)
		}
	}
	return templateFS, staticFS, nil
}

// staticHandler serves /static/* with cache headers suited to the mode.
func staticHandler(fsys fs.FS, isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}

// notFoundHandler answers every unmatched route: browsers get the error
// document, tools get plain text.
type notFoundHandler struct {
	T *TemplateRenderer
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		http.NotFound(w, r)
		return
	}
	renderErrorPage(w, h.T, ErrorPage{
		Status:  http.StatusNotFound,
		Title:   TitleUnknownPage,
		Message: MessagePageNotFound,
	})
}

package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/domain/assistant"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/domain/dashboard"
	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/service"
)

// AuthServiceInterface is what the HTTP layer needs from the auth service.
type AuthServiceInterface interface {
	SessionLookup
	Login(ctx context.Context, username, password string) (*domainauth.Session, error)
	Logout(ctx context.Context, sess *domainauth.Session) error
	Discard(ctx context.Context, sess *domainauth.Session) error
	SetCurrentPage(ctx context.Context, sess *domainauth.Session, page string) error
	RefreshTenant(ctx context.Context, sess *domainauth.Session) (tenant.Config, error)
	ChangePassword(ctx context.Context, sess *domainauth.Session, current, next string) error
	TTL() time.Duration
}

// DashboardLoader loads the dashboard aggregate.
type DashboardLoader interface {
	Load(ctx context.Context, creds apiclient.Credentials) (*dashboard.Dashboard, error)
}

// ResourceLister lists a backend collection as a formatted table.
type ResourceLister interface {
	List(ctx context.Context, creds apiclient.Credentials, spec service.ResourceSpec, query url.Values) (*service.Table, error)
}

// AssistantChat serves the assistant report and chat.
type AssistantChat interface {
	Report(ctx context.Context, creds apiclient.Credentials) (*assistant.Report, error)
	Transcript(ctx context.Context, sess *domainauth.Session) ([]assistant.Entry, error)
	Ask(ctx context.Context, sess *domainauth.Session, question string) ([]assistant.Entry, error)
}

// TenantSettings reads and writes the tenant configuration.
type TenantSettings interface {
	Load(ctx context.Context, creds apiclient.Credentials) (tenant.Config, error)
	Save(ctx context.Context, creds apiclient.Credentials, in service.SaveInput) (tenant.Config, error)
	DefaultColors() tenant.Config
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthServiceInterface = (*service.AuthService)(nil)
	_ DashboardLoader      = (*service.DashboardService)(nil)
	_ ResourceLister       = (*service.ResourceService)(nil)
	_ AssistantChat        = (*service.AssistantService)(nil)
	_ TenantSettings       = (*service.TenantService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Auth      AuthServiceInterface
	Dashboard DashboardLoader
	Resources ResourceLister
	Assistant AssistantChat
	Tenant    TenantSettings

	// AssetBase is the backend origin serving uploaded logos.
	AssetBase    string
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Index sends the user to the page they were last on.
// GET /{$}.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	target := appPathPrefix + domainauth.DefaultPage
	if sess := SessionFrom(r.Context()); sess != nil {
		if page, ok := PageFor(sess.Page()); ok {
			target = page.Path()
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Navigate shows one page of the dashboard.
// GET /app/{page}.
func (h *UIHandlers) Navigate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	if err := h.ensureTenant(r, sess); err != nil && h.expireOnUnauthorized(w, r, sess, err) {
		return
	}
	page, known := PageFor(r.PathValue("page"))
	data := h.pageData(r, sess, page)
	status := http.StatusOK

	switch {
	case !known:
		data.NotFound = true
		status = http.StatusNotFound
	case page.AdminOnly && (sess == nil || !sess.IsAdmin()):
		h.recordPage(r, sess, page.ID)
		data.Error = MessageAccessDenied
		status = http.StatusForbidden
	default:
		h.recordPage(r, sess, page.ID)
		content, err := h.fetchPage(r, sess, page)
		if err != nil {
			if h.expireOnUnauthorized(w, r, sess, err) {
				return
			}
			h.logger().WarnContext(r.Context(), "page fetch failed", "page", page.ID, "error", err)
			data.Error = messageLoadFailed + errorMessage(err)
			break
		}
		data.Content = content
	}

	h.renderPage(w, r, status, data)
}

func (h *UIHandlers) pageData(r *http.Request, sess *domainauth.Session, page PageSpec) *PageData {
	return newPageData(r, pageDataParams{
		Session:   sess,
		Page:      page,
		AssetBase: h.AssetBase,
		DevMode:   h.IsDev,
	})
}

// ensureTenant loads the tenant configuration into a session that has none,
// which happens when it could not be read at login. On failure the page
// renders with the default theme and the next navigation tries again.
func (h *UIHandlers) ensureTenant(r *http.Request, sess *domainauth.Session) error {
	if sess == nil || sess.Tenant != nil || h.Auth == nil {
		return nil
	}
	if _, err := h.Auth.RefreshTenant(r.Context(), sess); err != nil {
		h.logger().WarnContext(r.Context(), "loading tenant configuration failed", "error", err)
		return err
	}
	return nil
}

// recordPage stores the page as the session's current page. Failures only cost
// the "resume where you left off" redirect, so they are logged.
func (h *UIHandlers) recordPage(r *http.Request, sess *domainauth.Session, page string) {
	if sess == nil || h.Auth == nil {
		return
	}
	if err := h.Auth.SetCurrentPage(r.Context(), sess, page); err != nil {
		h.logger().WarnContext(r.Context(), "recording current page failed", "page", page, "error", err)
	}
}

// renderPage sends a page as a partial for htmx navigation or as the whole document.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data *PageData) {
	var err error
	if WantsPartial(r) {
		data.Partial = true
		HTMX(w).Trigger(EventNavActivate, map[string]string{"id": data.CurrentPage})
		triggerToasts(w, r)
		err = h.T.RenderPartial(w, status, data)
	} else {
		data.Toasts = pageToasts(w, r)
		err = h.T.RenderFull(w, status, data)
	}
	if err != nil {
		h.renderTemplateFailure(w, err)
	}
}

// renderFragment renders a named fragment for an htmx action, with pending toasts.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	triggerToasts(w, r)
	if err := h.T.Render(w, http.StatusOK, name, data); err != nil {
		h.renderTemplateFailure(w, err)
	}
}

// respondNoSwap answers an htmx action that only reports toasts.
func (h *UIHandlers) respondNoSwap(w http.ResponseWriter, r *http.Request) {
	triggerToasts(w, r)
	HTMX(w).Reswap("none")
	w.WriteHeader(http.StatusNoContent)
}

func (h *UIHandlers) renderTemplateFailure(w http.ResponseWriter, err error) {
	page := ErrorPage{Status: http.StatusInternalServerError, Message: messageUnexpected}
	if h.IsDev {
		page.Detail = err.Error()
	}
	http.Error(w, page.Message+" "+page.Detail, page.Status)
}

// expireOnUnauthorized handles a backend 401 during an authenticated call: the
// local session is dropped and the browser goes back to the login page.
func (h *UIHandlers) expireOnUnauthorized(
	w http.ResponseWriter,
	r *http.Request,
	sess *domainauth.Session,
	err error,
) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	if h.Auth != nil && sess != nil {
		if discardErr := h.Auth.Discard(r.Context(), sess); discardErr != nil {
			h.logger().WarnContext(r.Context(), "discarding rejected session failed", "error", discardErr)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	redirectToLogin(w, r)
	return true
}

package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/toast"
)

// loginPage is the pseudo page rendered for anonymous visitors.
//
//nolint:gochecknoglobals // static read-only value
var loginPage = PageSpec{ID: "login", Label: "Login"}

// LoginView is the content of the login overlay.
type LoginView struct {
	Username string
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	T            *TemplateRenderer
	Limiter      *LoginLimiter
	CookieDomain string
	AssetBase    string
	IsDev        bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage shows the login overlay, or sends a signed-in user to the app.
// GET /login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, err := sessionFromRequest(r, h.Svc); err == nil && sess != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginView{})
}

// Login authenticates the submitted credentials.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if !h.Limiter.Allow(clientIP(r)) {
		h.logger().WarnContext(r.Context(), "login throttled", "remote", clientIP(r))
		toast.FromContext(r.Context()).Error(messageTooManyLogins)
		h.loginFailed(w, r, http.StatusTooManyRequests, username)
		return
	}

	sess, err := h.Svc.Login(r.Context(), username, password)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "user", username, "error", err)
		h.loginFailed(w, r, http.StatusUnauthorized, username)
		return
	}

	setSessionCookie(w, r, sessionCookieParams{
		Session: sess,
		Domain:  h.CookieDomain,
		TTL:     h.Svc.TTL(),
	})
	redirectWithToasts(w, r, "/")
}

// loginFailed keeps the typed username. htmx submissions only get the toasts so
// the form stays as the user left it.
func (h *AuthHandlers) loginFailed(w http.ResponseWriter, r *http.Request, status int, username string) {
	if IsHTMX(r) {
		triggerToasts(w, r)
		HTMX(w).Reswap("none")
		w.WriteHeader(status)
		return
	}
	h.renderLogin(w, r, status, LoginView{Username: username})
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, view LoginView) {
	data := newPageData(r, pageDataParams{Page: loginPage, AssetBase: h.AssetBase, DevMode: h.IsDev})
	data.Content = view
	data.Toasts = pageToasts(w, r)
	if err := h.T.RenderFull(w, status, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render login failed", "error", err)
		http.Error(w, messageUnexpected, http.StatusInternalServerError)
	}
}

// Logout ends the session. It always signs the browser out, even when the
// backend or the session store fails.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := sessionFromRequest(r, h.Svc); err == nil && sess != nil {
		if logoutErr := h.Svc.Logout(r.Context(), sess); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	redirectToLogin(w, r)
}

type sessionCookieParams struct {
	Session *domainauth.Session
	Domain  string
	TTL     time.Duration
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, p sessionCookieParams) {
	maxAge := int(p.TTL.Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Until(p.Session.ExpiresAt).Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    p.Session.ID,
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearSessionCookie expires the session cookie with the attributes it was set with.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

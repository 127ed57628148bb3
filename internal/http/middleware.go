package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/ports"
)

// Logging writes one access line per request. 5xx responses log at warn.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote", clientIP(r)),
				slog.Bool("htmx", IsHTMX(r)),
			)
		})
	}
}

// accessRecorder remembers the first status and counts body bytes.
type accessRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	started bool
}

func (a *accessRecorder) WriteHeader(status int) {
	if !a.started {
		a.status, a.started = status, true
	}
	a.ResponseWriter.WriteHeader(status)
}

func (a *accessRecorder) Write(b []byte) (int, error) {
	a.started = true
	n, err := a.ResponseWriter.Write(b)
	a.bytes += int64(n)
	return n, err
}

// Flush lets the XLSX export stream through the recorder.
func (a *accessRecorder) Flush() {
	if f, ok := a.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (a *accessRecorder) Unwrap() http.ResponseWriter { return a.ResponseWriter }

// Recover turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so net/http can drop the connection quietly.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(v)
				}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.Any("error", v),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type ctxKeyBrowser struct{}

// BrowserDetection marks requests made by a page (HTML navigation or htmx),
// as opposed to health checks and static fetches. Error rendering picks HTML or
// plain text from the mark.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyBrowser{}, detectBrowser(r))))
		})
	}
}

// IsBrowserRequest reads the BrowserDetection mark, detecting on the spot
// when the middleware did not run.
func IsBrowserRequest(r *http.Request) bool {
	if v, ok := r.Context().Value(ctxKeyBrowser{}).(bool); ok {
		return v
	}
	return detectBrowser(r)
}

func detectBrowser(r *http.Request) bool {
	switch {
	case strings.HasPrefix(r.URL.Path, "/static/"), r.URL.Path == "/healthz":
		return false
	case IsHTMX(r):
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}

// SessionLookup resolves the session cookie.
type SessionLookup interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// RequireSession loads the session named by the session cookie into the request
// context. Requests without a live session are sent to the login page; a broken
// session store answers 503 instead of pretending the user signed out.
func RequireSession(sessions SessionLookup, cookieDomain string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessionFromRequest(r, sessions)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
			case errors.Is(err, ports.ErrSessionNotFound):
				clearSessionCookie(w, r, cookieDomain)
				redirectToLogin(w, r)
			default:
				logger.ErrorContext(r.Context(), "session lookup failed", "error", err)
				http.Error(w, "Serviço temporariamente indisponível", http.StatusServiceUnavailable)
			}
		})
	}
}

// sessionFromRequest reads the session cookie and fetches the session.
// A missing cookie reports ports.ErrSessionNotFound.
func sessionFromRequest(r *http.Request, sessions SessionLookup) (*domainauth.Session, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil, ports.ErrSessionNotFound
	}
	return sessions.GetSession(r.Context(), c.Value)
}

// redirectToLogin sends the browser to the login page, carrying pending toasts.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectWithToasts(w, r, loginPath)
}

// isSecureRequest reports whether the request reached us over TLS, directly or via a proxy.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}

// isForwardedHTTPS checks X-Forwarded-Proto, which may list several hops.
func isForwardedHTTPS(r *http.Request) bool {
	for proto := range strings.SplitSeq(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// Chain applies middlewares so that the first one listed is the outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

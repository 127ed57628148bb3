package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"

	"github.com/techmidia/painel/internal/toast"
)

const (
	DefaultCSRFCookieName  = "csrf_token"   // also the hidden form field
	DefaultCSRFHeaderName  = "X-Csrf-Token" // set by app.js on htmx requests
	DefaultCSRFTokenLength = 32

	csrfCookieMaxAge   = 12 * 3600
	messageCSRFFailure = "Sua sessão do formulário expirou. Recarregue a página."
)

type CSRFConfig struct {
	CookieName    string
	HeaderName    string
	FormFieldName string
	CookieDomain  string
	TokenLength   int // random bytes before encoding
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = DefaultCSRFCookieName
	}
	if c.HeaderName == "" {
		c.HeaderName = DefaultCSRFHeaderName
	}
	if c.FormFieldName == "" {
		c.FormFieldName = c.CookieName
	}
	if c.TokenLength <= 0 {
		c.TokenLength = DefaultCSRFTokenLength
	}
	return c
}

type ctxKeyCSRF struct{}

// CSRFProtection guards unsafe methods with a double-submit token. The
// cookie is readable by script so htmx can echo it in a header; plain
// forms post it as a hidden field.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cfg.ensureCookie(w, r)
			if err != nil {
				http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyCSRF{}, token))

			if !isSafeMethod(r.Method) && !cfg.matches(w, r, token) {
				rejectCSRF(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ensureCookie returns the request's token, issuing a fresh cookie when absent.
func (c CSRFConfig) ensureCookie(w http.ResponseWriter, r *http.Request) (string, error) {
	if existing, err := r.Cookie(c.CookieName); err == nil && existing.Value != "" {
		return existing.Value, nil
	}
	raw := make([]byte, c.TokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("csrf token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.CookieDomain,
		MaxAge:   csrfCookieMaxAge,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// matches compares the submitted token with the cookie in constant time.
// The header wins; form bodies are only parsed when it is missing.
func (c CSRFConfig) matches(w http.ResponseWriter, r *http.Request, token string) bool {
	submitted := r.Header.Get(c.HeaderName)
	if submitted == "" {
		submitted = c.formToken(w, r)
	}
	return token != "" && submitted != "" &&
		subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) == 1
}

// formToken parses at most a logo upload plus form overhead; larger bodies
// fail to parse and carry no token.
func (c CSRFConfig) formToken(w http.ResponseWriter, r *http.Request) string {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+formOverheadBytes)
	}
	switch mediaType {
	case "multipart/form-data":
		if r.ParseMultipartForm(maxUploadBytes) != nil {
			return ""
		}
	case "application/x-www-form-urlencoded":
		if r.ParseForm() != nil {
			return ""
		}
	default:
		return ""
	}
	return r.PostFormValue(c.FormFieldName)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// rejectCSRF answers 403. htmx callers also get a toast and keep their form.
func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		toast.FromContext(r.Context()).Error(messageCSRFFailure)
		triggerToasts(w, r)
		HTMX(w).Reswap("none")
	}
	http.Error(w, "CSRF token validation failed", http.StatusForbidden)
}

// GetCSRFToken is the token templates embed in forms.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(ctxKeyCSRF{}).(string)
	return token
}

package httpx

import (
	"net/http"

	"github.com/techmidia/painel/internal/toast"
)

// Toasts attaches a fresh toast queue to every request so the backend client,
// services and handlers can all push notifications for it.
func Toasts() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, _ := toast.WithQueue(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func drainToasts(r *http.Request) []toast.Toast {
	return toast.FromContext(r.Context()).Drain()
}

// triggerToasts moves the pending toasts into the Hx-Trigger header.
// It must run before the response header is written.
func triggerToasts(w http.ResponseWriter, r *http.Request) {
	HTMX(w).Toasts(drainToasts(r))
}

// pageToasts returns the toasts carried over by a redirect followed by those
// raised while serving this request, for inline rendering.
func pageToasts(w http.ResponseWriter, r *http.Request) []toast.Toast {
	flashed := toast.TakeFlash(w, r)
	return append(flashed, drainToasts(r)...)
}

// redirectWithToasts stores pending toasts in the flash cookie and redirects.
// htmx requests get Hx-Redirect so the whole document is replaced.
func redirectWithToasts(w http.ResponseWriter, r *http.Request, target string) {
	toast.SetFlash(w, r, drainToasts(r))
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

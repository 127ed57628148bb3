package toast

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// FlashCookieName carries toasts across a redirect.
const FlashCookieName = "painel_flash"

const (
	flashMaxAge   = 60
	flashMaxItems = 8
)

// SetFlash stores toasts in a short-lived cookie read by the next page render.
func SetFlash(w http.ResponseWriter, r *http.Request, toasts []Toast) {
	if len(toasts) == 0 {
		return
	}
	if len(toasts) > flashMaxItems {
		toasts = toasts[len(toasts)-flashMaxItems:]
	}
	raw, err := json.Marshal(toasts)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash reads and clears the flash cookie. Malformed cookies are dropped silently.
func TakeFlash(w http.ResponseWriter, r *http.Request) []Toast {
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var toasts []Toast
	if err := json.Unmarshal(raw, &toasts); err != nil {
		return nil
	}
	out := toasts[:0]
	for _, t := range toasts {
		if t.Message == "" {
			continue
		}
		switch t.Kind {
		case KindInfo, KindSuccess, KindError:
		default:
			t.Kind = KindInfo
		}
		out = append(out, t)
	}
	if len(out) > flashMaxItems {
		out = out[:flashMaxItems]
	}
	return out
}

func isSecureRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

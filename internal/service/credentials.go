package service

import (
	"net/http"

	"github.com/techmidia/painel/internal/apiclient"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
)

// Credentials returns the backend cookies stored in the session.
func Credentials(sess *domainauth.Session) apiclient.Credentials {
	if sess == nil || len(sess.BackendCookies) == 0 {
		return apiclient.Credentials{}
	}
	cookies := make([]*http.Cookie, 0, len(sess.BackendCookies))
	for _, c := range sess.BackendCookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return apiclient.Credentials{Cookies: cookies}
}

func storedCookies(cookies []*http.Cookie) []domainauth.StoredCookie {
	out := make([]domainauth.StoredCookie, 0, len(cookies))
	for _, c := range cookies {
		if c == nil || c.Name == "" {
			continue
		}
		out = append(out, domainauth.StoredCookie{Name: c.Name, Value: c.Value})
	}
	return out
}

package httpx

import (
	"context"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
)

type ctxKeySession struct{}

// WithSession stores sess on ctx for handlers behind RequireAuth.
func WithSession(ctx context.Context, sess *domainauth.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKeySession{}, sess)
}

// SessionFrom returns the session RequireAuth stored, or nil on public routes.
func SessionFrom(ctx context.Context) *domainauth.Session {
	sess, _ := ctx.Value(ctxKeySession{}).(*domainauth.Session)
	return sess
}

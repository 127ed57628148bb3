// Package ports defines interfaces (hexagonal ports) for the dashboard's outbound dependencies.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
)

// ErrSessionNotFound is returned by session stores for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionAdmin enumerates stored sessions for operational tooling.
type SessionAdmin interface {
	Count(ctx context.Context) (int, error)
	Purge(ctx context.Context) (int, error)
}

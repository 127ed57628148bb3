// Package auth contains domain-level types for dashboard users and their sessions.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"time"

	"github.com/techmidia/painel/internal/domain/tenant"
)

// Role represents a backend authorization role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultPage is the page shown right after login.
const DefaultPage = "dashboard"

// User is the account returned by the backend login endpoint.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	LastLogin string `json:"last_login,omitempty"`
}

// StoredCookie is a backend session cookie kept on behalf of the user.
type StoredCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is the server-side record persisted for an authenticated user.
// It replaces the browser globals of the old client: the current user and the current page.
type Session struct {
	ID             string         `json:"id"`
	UserID         int64          `json:"user_id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Role           Role           `json:"role"`
	BackendCookies []StoredCookie `json:"backend_cookies,omitempty"`
	CurrentPage    string         `json:"current_page"`
	Tenant         *tenant.Config `json:"tenant,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	ExpiresAt      time.Time      `json:"expires_at"`
}

// IsAdmin reports whether the user may manage other users.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool { return !s.ExpiresAt.After(now) }

// Page returns the current page, falling back to DefaultPage.
func (s Session) Page() string {
	if s.CurrentPage == "" {
		return DefaultPage
	}
	return s.CurrentPage
}

// Theme returns the tenant configuration to render, falling back to defaults.
func (s Session) Theme() tenant.Config {
	if s.Tenant == nil {
		return tenant.Defaults()
	}
	return s.Tenant.Normalized()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techmidia/painel/internal/apiclient"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/domain/tenant"
	apperrors "github.com/techmidia/painel/internal/errors"
	"github.com/techmidia/painel/internal/ports"
	"github.com/techmidia/painel/internal/toast"
)

const (
	defaultSessionTTL = 8 * time.Hour

	MessageLoginOK           = "Login realizado com sucesso!"
	MessageLogoutOK          = "Logout realizado com sucesso!"
	MessagePasswordChanged   = "Senha alterada com sucesso!"
	messageCredentialsNeeded = "Username e password são obrigatórios"
	messagePasswordsNeeded   = "Senha atual e nova senha são obrigatórias"
)

// AuthStores groups the per-user state stores.
type AuthStores struct {
	Sessions    ports.SessionStore
	Transcripts ports.TranscriptStore // Optional: cleared on logout
}

// AuthSettings tunes session lifetime and observability.
type AuthSettings struct {
	TTL    time.Duration
	Logger *slog.Logger
	Now    func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend  ports.BackendAPI
	Stores   AuthStores
	Settings AuthSettings
}

// AuthService signs users in against the backend and keeps their session server side.
type AuthService struct {
	backend     ports.BackendAPI
	sessions    ports.SessionStore
	transcripts ports.TranscriptStore
	tenants     *TenantService
	ttl         time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Backend == nil {
		panic("AuthService requires a backend")
	}
	if opts.Stores.Sessions == nil {
		panic("AuthService requires a session store")
	}
	ttl := opts.Settings.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Settings.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Settings.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		backend:     opts.Backend,
		sessions:    opts.Stores.Sessions,
		transcripts: opts.Stores.Transcripts,
		tenants:     NewTenantService(TenantServiceOptions{Backend: opts.Backend}),
		ttl:         ttl,
		logger:      logger.With("component", "auth_service"),
		now:         now,
	}
}

// TTL is the lifetime given to new sessions.
func (s *AuthService) TTL() time.Duration { return s.ttl }

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string          `json:"message"`
	User    domainauth.User `json:"user"`
}

// Login authenticates against the backend and persists a new session.
// Outcome toasts are pushed onto the request's queue.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domainauth.Session, error) {
	sess, err := s.login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		toast.FromContext(ctx).Error("Erro no login: " + apperrors.UserMessage(err, apiclient.MessageRequestFailed))
		return nil, err
	}
	toast.FromContext(ctx).Success(MessageLoginOK)
	return sess, nil
}

func (s *AuthService) login(ctx context.Context, username, password string) (*domainauth.Session, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation(messageCredentialsNeeded)
	}

	resp, err := s.backend.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return nil, err
	}
	var out loginResponse
	if decodeErr := resp.Decode(&out); decodeErr != nil {
		return nil, apperrors.Wrap(decodeErr, apperrors.ErrCodeUpstream, apiclient.MessageInvalidResponse)
	}
	if out.User.Username == "" {
		return nil, apperrors.Upstream(apiclient.MessageInvalidResponse)
	}

	now := s.now()
	sess := domainauth.Session{
		ID:             generateSessionID(),
		UserID:         out.User.ID,
		Username:       out.User.Username,
		Email:          out.User.Email,
		Role:           out.User.Role,
		BackendCookies: storedCookies(resp.Cookies),
		CurrentPage:    domainauth.DefaultPage,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}

	cfg, err := s.tenants.Load(ctx, Credentials(&sess))
	if err != nil {
		s.logger.WarnContext(ctx, "tenant config unavailable at login, using defaults",
			"user", sess.Username, "error", err)
		cfg = tenant.Defaults()
	}
	sess.Tenant = &cfg

	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, apperrors.Wrap(saveErr, apperrors.ErrCodeInternal, "Não foi possível iniciar a sessão")
	}

	s.logger.InfoContext(ctx, "user logged in", "user", sess.Username, "role", sess.Role)
	return &sess, nil
}

// Logout ends the backend session and always removes local state.
// A backend failure is toasted and returned, yet the user is signed out regardless.
func (s *AuthService) Logout(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil {
		return nil
	}

	backendErr := s.backend.Post(ctx, Credentials(sess), "/logout", nil, nil)

	var errs []error
	if backendErr != nil {
		errs = append(errs, fmt.Errorf("backend logout: %w", backendErr))
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		errs = append(errs, fmt.Errorf("delete session: %w", err))
	}
	if s.transcripts != nil {
		if err := s.transcripts.Clear(ctx, sess.ID); err != nil {
			errs = append(errs, fmt.Errorf("clear transcript: %w", err))
		}
	}

	if backendErr != nil {
		toast.FromContext(ctx).Error("Erro no logout: " + apperrors.UserMessage(backendErr, apiclient.MessageRequestFailed))
	} else {
		toast.FromContext(ctx).Success(MessageLogoutOK)
	}
	return errors.Join(errs...)
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, ports.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, ports.ErrSessionNotFound, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errors.Join(errSessionExpired, ports.ErrSessionNotFound)
	}

	return &session, nil
}

// Discard removes local state for a session the backend no longer accepts.
func (s *AuthService) Discard(ctx context.Context, sess *domainauth.Session) error {
	if sess == nil {
		return nil
	}
	err := s.sessions.Delete(ctx, sess.ID)
	if s.transcripts != nil {
		err = errors.Join(err, s.transcripts.Clear(ctx, sess.ID))
	}
	return err
}

// SetCurrentPage records page as the session's active page.
func (s *AuthService) SetCurrentPage(ctx context.Context, sess *domainauth.Session, page string) error {
	if sess == nil || sess.CurrentPage == page {
		return nil
	}
	sess.CurrentPage = page
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save current page: %w", err)
	}
	return nil
}

// RefreshTenant reloads the tenant configuration into the session.
func (s *AuthService) RefreshTenant(ctx context.Context, sess *domainauth.Session) (tenant.Config, error) {
	cfg, err := s.tenants.Load(ctx, Credentials(sess))
	if err != nil {
		return tenant.Config{}, err
	}
	sess.Tenant = &cfg
	if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
		return cfg, fmt.Errorf("save tenant: %w", saveErr)
	}
	return cfg, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword changes the signed-in user's password on the backend.
func (s *AuthService) ChangePassword(ctx context.Context, sess *domainauth.Session, current, next string) error {
	if current == "" || next == "" {
		err := apperrors.Validation(messagePasswordsNeeded)
		toast.FromContext(ctx).Error(err.Message)
		return err
	}
	body := changePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := s.backend.Post(ctx, Credentials(sess), "/change-password", body, nil); err != nil {
		return err
	}
	toast.FromContext(ctx).Success(MessagePasswordChanged)
	return nil
}

func generateSessionID() string {
	return uuid.New().String()
}

package service

import (
	"context"
	"errors"
	"sync"

	"salonadmin/internal/api"
	"salonadmin/internal/domain"
	"salonadmin/internal/events"
	"salonadmin/internal/models"
	"salonadmin/internal/session"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrLoginRequired means no session exists; the view layer redirects
	// to the login screen.
	ErrLoginRequired = errors.New("auth: login required")

	// ErrRoleForbidden means a session exists but the role does not match;
	// the view layer shows the unauthorized screen.
	ErrRoleForbidden = errors.New("auth: insufficient role")
)

// AuthManager is the single source of truth for the operator session. It
// owns the token store: login and logout are the only writers besides the
// client's 401 refresh path.
type AuthManager struct {
	api    domain.AuthAPI
	store  session.Store
	bus    domain.EventPublisher
	logger zerolog.Logger

	mu      sync.RWMutex
	current *session.Session
}

func NewAuthManager(authAPI domain.AuthAPI, store session.Store, bus domain.EventPublisher, logger *zerolog.Logger) *AuthManager {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "auth").Logger()
	}
	return &AuthManager{api: authAPI, store: store, bus: bus, logger: base}
}

// Restore loads a persisted session into the in-memory cache, so a console
// restart resumes the previous login. Missing session is not an error.
func (m *AuthManager) Restore(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return nil
}

// Login authenticates and installs the session atomically: tokens and user
// are stored together or not at all.
func (m *AuthManager) Login(ctx context.Context, email, password string) (*models.User, error) {
	auth, err := m.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	sess := &session.Session{
		AccessToken:  auth.Tokens.AccessToken,
		RefreshToken: auth.Tokens.RefreshToken,
		User:         &auth.User,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	m.logger.Info().Int64("user_id", auth.User.ID).Str("role", auth.User.Role).Msg("logged in")
	if m.bus != nil {
		_ = m.bus.PublishJSON(events.EventLoggedIn, auth.User)
	}
	return &auth.User, nil
}

// Register creates a new account through the admin console. The operator's
// own session is left untouched.
func (m *AuthManager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	auth, err := m.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return &auth.User, nil
}

// Logout clears all session state unconditionally. It is idempotent and has
// no failure mode: store errors are logged, not returned.
func (m *AuthManager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error().Err(err).Msg("failed to clear session store on logout")
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if m.bus != nil {
		_ = m.bus.PublishJSON(events.EventLoggedOut, struct{}{})
	}
}

// Invalidate drops the in-memory session cache. Wired to the client's
// session-expired hook, which has already cleared the store.
func (m *AuthManager) Invalidate() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// CurrentUser is a synchronous read of the cached user; it never touches the
// network.
func (m *AuthManager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return m.current.User
}

// IsAuthenticated reports whether a non-empty access token is held.
func (m *AuthManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAuthenticated()
}

// RequireRole guards protected operations. It must run before any protected
// data fetch so nothing is requested while unauthenticated or under the
// wrong role.
func (m *AuthManager) RequireRole(role string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.current.IsAuthenticated() {
		return ErrLoginRequired
	}
	if m.current.User == nil || m.current.User.Role != role {
		return ErrRoleForbidden
	}
	return nil
}

// RefreshProfile refetches the user record and updates the stored session
// in place, keeping the current token pair.
func (m *AuthManager) RefreshProfile(ctx context.Context) (*models.User, error) {
	user, err := m.api.Profile(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return user, nil
	}

	m.current.User = user
	if err := m.store.Save(ctx, m.current); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist refreshed profile")
	}
	return user, nil
}

package services

import (
	"context"
	"errors"
	"sync"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
	"github.com/keystone-labs/kbs-cli/internal/logger"
)

// Ensure SessionManager implements the interfaces.
var (
	_ driving.SessionService = (*SessionManager)(nil)
	_ driven.TokenProvider   = (*SessionManager)(nil)
)

// SessionManager is the session gate. It holds the current session as an
// explicit object handed to dependent services; there is no package-level
// identity state.
type SessionManager struct {
	provider driven.AuthProvider
	store    driven.SessionStore

	mu      sync.RWMutex
	current *domain.Session
}

// NewSessionManager creates a session manager backed by the external auth
// service and a persistent session store.
func NewSessionManager(provider driven.AuthProvider, store driven.SessionStore) *SessionManager {
	return &SessionManager{
		provider: provider,
		store:    store,
	}
}

// SignIn begins a session with existing credentials. The session is
// persisted so later invocations can restore it.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(session)
	return session, nil
}

// SignUp registers a new account and begins its session.
func (m *SessionManager) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := m.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(session)
	return session, nil
}

// SignOut revokes the session and clears persisted state. The local
// session is dropped even when the remote revoke fails.
func (m *SessionManager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	session := m.current
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		logger.Warn("Clearing persisted session: %v", err)
	}

	if session == nil {
		return nil
	}
	if err := m.provider.SignOut(ctx, session); err != nil {
		return err
	}
	return nil
}

// Restore loads the persisted session, refreshing it when expired.
func (m *SessionManager) Restore(ctx context.Context) (*domain.Session, error) {
	session, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		refreshed, err := m.provider.Refresh(ctx, session.RefreshToken)
		if err != nil {
			// The refresh token is dead; the user has to sign in again.
			if clearErr := m.store.Clear(); clearErr != nil {
				logger.Warn("Clearing stale session: %v", clearErr)
			}
			return nil, err
		}
		session = refreshed
	}

	m.adopt(session)
	return session, nil
}

// Current returns the active session, or nil when anonymous.
func (m *SessionManager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// AccessToken returns a valid access token for the data API, refreshing
// the session transparently when it has expired.
func (m *SessionManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	session := m.current
	m.mu.RUnlock()

	if session == nil {
		return "", domain.ErrNoSession
	}
	if !session.Expired() {
		return session.AccessToken, nil
	}

	refreshed, err := m.provider.Refresh(ctx, session.RefreshToken)
	if err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return "", err
		}
		return "", domain.NewAuthError("session refresh failed", err)
	}

	m.adopt(refreshed)
	return refreshed.AccessToken, nil
}

// adopt installs and persists a session.
func (m *SessionManager) adopt(session *domain.Session) {
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if err := m.store.Save(session); err != nil {
		logger.Warn("Persisting session: %v", err)
	}
}

package driven

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// AuthProvider talks to the external authentication service.
// All operations fail with *domain.AuthError carrying a human-readable
// message on invalid credentials or network failure.
type AuthProvider interface {
	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignUp registers a new account and returns its session.
	SignUp(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut revokes the session's refresh token.
	SignOut(ctx context.Context, session *domain.Session) error

	// Refresh exchanges a refresh token for a fresh session.
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
}

// SessionStore persists a session between process invocations.
type SessionStore interface {
	// Save writes the session to durable storage.
	Save(session *domain.Session) error

	// Load returns the persisted session, or domain.ErrNotFound.
	Load() (*domain.Session, error)

	// Clear removes the persisted session.
	Clear() error
}

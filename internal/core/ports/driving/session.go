package driving

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// SessionService gates all data operations on an authenticated identity.
type SessionService interface {
	// SignIn begins a session with existing credentials.
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)

	// SignUp registers a new account and begins its session.
	SignUp(ctx context.Context, email, password string) (*domain.Session, error)

	// SignOut ends the current session and clears persisted state.
	SignOut(ctx context.Context) error

	// Restore loads a persisted session, refreshing it if expired.
	// Returns domain.ErrNotFound when no session is stored.
	Restore(ctx context.Context) (*domain.Session, error)

	// Current returns the active session, or nil when anonymous.
	Current() *domain.Session
}

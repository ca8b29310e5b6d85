// Package localauth implements the auth provider port without an
// external service, for the local SQLite backend. Credentials are
// accepted as-is; identity is derived deterministically from the email
// so telemetry stays attributable across sessions.
package localauth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// sessionTTL keeps local sessions valid long enough that refresh is a
// formality rather than a recurring interruption.
const sessionTTL = 30 * 24 * time.Hour

// Ensure Provider implements the port.
var _ driven.AuthProvider = (*Provider)(nil)

// Provider issues local sessions without verifying credentials against
// anything. Not an authentication boundary; it exists so the local
// backend keeps the same sign-in flow and per-user telemetry as the
// managed one.
type Provider struct {
	namespace uuid.UUID
}

// NewProvider creates a local auth provider.
func NewProvider() *Provider {
	return &Provider{
		namespace: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), // uuid.NameSpaceDNS
	}
}

// SignIn issues a session for the email. The password is only checked
// for presence.
func (p *Provider) SignIn(_ context.Context, email, password string) (*domain.Session, error) {
	return p.issue(email, password)
}

// SignUp behaves identically to SignIn; there is no account registry.
func (p *Provider) SignUp(_ context.Context, email, password string) (*domain.Session, error) {
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	return p.issue(email, password)
}

// SignOut has nothing to revoke.
func (p *Provider) SignOut(_ context.Context, _ *domain.Session) error {
	return nil
}

// Refresh re-issues the session identified by the refresh token, which
// carries the email.
func (p *Provider) Refresh(_ context.Context, refreshToken string) (*domain.Session, error) {
	email, ok := strings.CutPrefix(refreshToken, "local:")
	if !ok || email == "" {
		return nil, domain.NewAuthError("invalid refresh token", nil)
	}
	return p.issue(email, "-")
}

func (p *Provider) issue(email, password string) (*domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewAuthError("email is required", nil)
	}
	if password == "" {
		return nil, domain.NewAuthError("password is required", nil)
	}

	return &domain.Session{
		UserID:       uuid.NewSHA1(p.namespace, []byte(email)).String(),
		Email:        email,
		AccessToken:  "local:" + uuid.NewString(),
		RefreshToken: "local:" + email,
		ExpiresAt:    time.Now().Add(sessionTTL),
	}, nil
}

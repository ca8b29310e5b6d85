package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// mockAuthProvider implements driven.AuthProvider for testing.
type mockAuthProvider struct {
	session    *domain.Session
	refreshed  *domain.Session
	signInErr  error
	signUpErr  error
	signOutErr error
	refreshErr error

	signOutCalls int
	refreshCalls int
}

func (m *mockAuthProvider) SignIn(_ context.Context, _, _ string) (*domain.Session, error) {
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	return m.session, nil
}

func (m *mockAuthProvider) SignUp(_ context.Context, _, _ string) (*domain.Session, error) {
	if m.signUpErr != nil {
		return nil, m.signUpErr
	}
	return m.session, nil
}

func (m *mockAuthProvider) SignOut(_ context.Context, _ *domain.Session) error {
	m.signOutCalls++
	return m.signOutErr
}

func (m *mockAuthProvider) Refresh(_ context.Context, _ string) (*domain.Session, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshed, nil
}

// mockSessionStore implements driven.SessionStore backed by a field.
type mockSessionStore struct {
	saved   *domain.Session
	loadErr error
	saveErr error
}

func (m *mockSessionStore) Save(session *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = session
	return nil
}

func (m *mockSessionStore) Load() (*domain.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.saved == nil {
		return nil, domain.ErrNotFound
	}
	return m.saved, nil
}

func (m *mockSessionStore) Clear() error {
	m.saved = nil
	return nil
}

func liveSession() *domain.Session {
	return &domain.Session{
		UserID:       "user-1",
		Email:        "user@example.com",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func expiredSession() *domain.Session {
	s := liveSession()
	s.AccessToken = "stale"
	s.ExpiresAt = time.Now().Add(-time.Hour)
	return s
}

func TestSignInAdoptsAndPersists(t *testing.T) {
	provider := &mockAuthProvider{session: liveSession()}
	store := &mockSessionStore{}
	m := NewSessionManager(provider, store)

	session, err := m.SignIn(context.Background(), "user@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, session, m.Current())
	assert.Equal(t, session, store.saved)
}

func TestSignInFailureStaysAnonymous(t *testing.T) {
	provider := &mockAuthProvider{signInErr: domain.NewAuthError("invalid credentials", nil)}
	m := NewSessionManager(provider, &mockSessionStore{})

	_, err := m.SignIn(context.Background(), "user@example.com", "wrong")

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Message)
	assert.Nil(t, m.Current())
}

func TestSignOutClearsEvenWhenRevokeFails(t *testing.T) {
	provider := &mockAuthProvider{session: liveSession(), signOutErr: assert.AnError}
	store := &mockSessionStore{}
	m := NewSessionManager(provider, store)
	_, err := m.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	err = m.SignOut(context.Background())

	require.Error(t, err)
	assert.Nil(t, m.Current())
	assert.Nil(t, store.saved)
	assert.Equal(t, 1, provider.signOutCalls)
}

func TestSignOutAnonymousIsNoOp(t *testing.T) {
	provider := &mockAuthProvider{}
	m := NewSessionManager(provider, &mockSessionStore{})

	require.NoError(t, m.SignOut(context.Background()))
	assert.Zero(t, provider.signOutCalls)
}

func TestRestoreReturnsPersistedSession(t *testing.T) {
	provider := &mockAuthProvider{}
	store := &mockSessionStore{saved: liveSession()}
	m := NewSessionManager(provider, store)

	session, err := m.Restore(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Zero(t, provider.refreshCalls)
}

func TestRestoreRefreshesExpiredSession(t *testing.T) {
	fresh := liveSession()
	fresh.AccessToken = "fresh"
	provider := &mockAuthProvider{refreshed: fresh}
	store := &mockSessionStore{saved: expiredSession()}
	m := NewSessionManager(provider, store)

	session, err := m.Restore(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh", session.AccessToken)
	assert.Equal(t, 1, provider.refreshCalls)
	assert.Equal(t, fresh, store.saved)
}

func TestRestoreClearsDeadSession(t *testing.T) {
	provider := &mockAuthProvider{refreshErr: domain.NewAuthError("refresh token revoked", nil)}
	store := &mockSessionStore{saved: expiredSession()}
	m := NewSessionManager(provider, store)

	_, err := m.Restore(context.Background())

	require.Error(t, err)
	assert.Nil(t, store.saved)
	assert.Nil(t, m.Current())
}

func TestRestoreWithNoSession(t *testing.T) {
	m := NewSessionManager(&mockAuthProvider{}, &mockSessionStore{})

	_, err := m.Restore(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessTokenRefreshesTransparently(t *testing.T) {
	fresh := liveSession()
	fresh.AccessToken = "fresh"
	provider := &mockAuthProvider{session: expiredSession(), refreshed: fresh}
	store := &mockSessionStore{}
	m := NewSessionManager(provider, store)
	_, err := m.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	token, err := m.AccessToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Equal(t, 1, provider.refreshCalls)
}

func TestAccessTokenAnonymous(t *testing.T) {
	m := NewSessionManager(&mockAuthProvider{}, &mockSessionStore{})

	_, err := m.AccessToken(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoSession)
}

package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// sessionFile is the TOML shape of a persisted session.
type sessionFile struct {
	UserID       string    `toml:"user_id"`
	Email        string    `toml:"email"`
	AccessToken  string    `toml:"access_token"`
	RefreshToken string    `toml:"refresh_token"`
	ExpiresAt    time.Time `toml:"expires_at"`
}

// SessionStore persists the active session to a TOML file so a signed-in
// identity survives between invocations. The file carries tokens and is
// written with owner-only permissions.
type SessionStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSessionStore creates a session store in configDir.
// If configDir is empty, defaults to ~/.kbs/session.toml.
func NewSessionStore(configDir string) (*SessionStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".kbs")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SessionStore{
		filePath: filepath.Join(configDir, "session.toml"),
	}, nil
}

// Save writes the session to disk.
func (s *SessionStore) Save(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(sessionFile{
		UserID:       session.UserID,
		Email:        session.Email,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Load returns the persisted session, or domain.ErrNotFound when no
// session has been saved.
func (s *SessionStore) Load() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var stored sessionFile
	if err := toml.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	if stored.AccessToken == "" {
		return nil, domain.ErrNotFound
	}

	return &domain.Session{
		UserID:       stored.UserID,
		Email:        stored.Email,
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		ExpiresAt:    stored.ExpiresAt,
	}, nil
}

// Clear removes the persisted session. Clearing an absent session is
// not an error.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.filePath
}

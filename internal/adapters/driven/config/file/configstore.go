package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in a TOML file under the kbs config
// directory. Nested tables are exposed through dot-notation keys, so
// `[remote] url = ...` reads as "remote.url".
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	keys map[string]any
}

// NewConfigStore opens (or creates) the config file. An empty configDir
// selects ~/.kbs.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configDir = filepath.Join(home, ".kbs")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{
		path: filepath.Join(configDir, "config.toml"),
		keys: map[string]any{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConfigStore) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var parsed map[string]any
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}

	s.keys = map[string]any{}
	flattenInto(s.keys, "", parsed)
	return nil
}

// flattenInto walks nested TOML tables and records leaves under
// dot-joined keys.
func flattenInto(dst map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flattenInto(dst, key, table)
			continue
		}
		dst[key] = value
	}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.keys[key]
	return value, ok
}

// GetString retrieves a string value, "" if absent or mistyped.
func (s *ConfigStore) GetString(key string) string {
	value, _ := s.Get(key)
	str, _ := value.(string)
	return str
}

// GetInt retrieves an integer value, 0 if absent or mistyped.
func (s *ConfigStore) GetInt(key string) int {
	value, _ := s.Get(key)
	// TOML decodes integers as int64.
	switch n := value.(type) {
	case int64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// GetBool retrieves a boolean value, false if absent or mistyped.
func (s *ConfigStore) GetBool(key string) bool {
	value, _ := s.Get(key)
	b, _ := value.(bool)
	return b
}

// Set stores a value and persists the file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = value
	return s.write()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// write serialises the flat key map. Caller holds the lock. The file is
// owner-only since it may carry an API key.
func (s *ConfigStore) write() error {
	raw, err := toml.Marshal(s.keys)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.path
}

package driven

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 if absent.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false if absent.
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any) error

	// Save persists the configuration to storage.
	Save() error
}

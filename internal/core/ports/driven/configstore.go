package driven

// ConfigStore provides persistent key-value configuration, including the
// process-wide current collection selector.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value ("" when unset).
	GetString(key string) string

	// GetInt retrieves an integer configuration value (0 when unset).
	GetInt(key string) int

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration to disk.
	Save() error
}

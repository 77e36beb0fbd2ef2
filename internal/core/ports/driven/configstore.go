package driven

// ConfigStore provides access to application configuration.
// Keys are dot-separated, e.g. "matcher.weight.amount".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetInt retrieves an integer value, or 0 when absent or mistyped.
	GetInt(key string) int

	// GetFloat retrieves a numeric value, or 0 when absent or mistyped.
	// Integers are widened.
	GetFloat(key string) float64

	// GetStringSlice retrieves a string slice, or nil when absent or mistyped.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error
}

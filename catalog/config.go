package catalog

import "fmt"

// DefaultPlaceholder replaces values whose display form cannot be produced.
const DefaultPlaceholder = "<unrepresentable>"

// Config holds the configuration for a Walker. The zero value is valid.
type Config struct {
	// Strict rejects binding names that are empty or contain '.', which
	// would otherwise make dotted paths ambiguous. When false, colliding
	// paths are last-write-wins.
	Strict bool

	// MaxDepth limits namespace nesting. Root-level bindings are depth 1.
	// Zero means unlimited.
	MaxDepth int

	// Placeholder is the value reported when a value cannot be displayed.
	// Defaults to DefaultPlaceholder.
	Placeholder string

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks the configuration.
// Returns ErrConfiguration if a field is out of range.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: MaxDepth must be >= 0, got %d", ErrConfiguration, c.MaxDepth)
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
}

package sandbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolscope/backend"
)

// Config holds the configuration for a sandbox environment.
type Config struct {
	// Index provides tool discovery and lookup capabilities.
	// Required.
	Index index.Index

	// Docs provides tool documentation.
	// Required.
	Docs tooldoc.Store

	// Backends executes tools and projects them into the namespace.
	// Optional; without it only the metatools are available.
	Backends *backend.Aggregator

	// DefaultTimeout is the default execution timeout for snippets.
	// If zero, no default timeout is applied.
	DefaultTimeout time.Duration

	// DefaultLanguage is the default snippet language.
	// Defaults to "go" if empty.
	DefaultLanguage string

	// MaxToolCalls limits the number of tool invocations per session.
	// Zero means unlimited.
	MaxToolCalls int

	// MaxChainSteps limits the number of steps in a single RunChain call.
	// Zero means unlimited.
	MaxChainSteps int

	// Flags are exposed as boolean values under the flags namespace.
	Flags map[string]bool

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set and limits are not
// negative. Returns ErrConfiguration on failure.
func (c *Config) Validate() error {
	var missing []string

	if c.Index == nil {
		missing = append(missing, "Index")
	}
	if c.Docs == nil {
		missing = append(missing, "Docs")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}

	if c.MaxToolCalls < 0 || c.MaxChainSteps < 0 || c.DefaultTimeout < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrConfiguration)
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "go"
	}
}

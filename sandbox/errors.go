package sandbox

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrLimitExceeded indicates that a session limit was reached, such as
	// the maximum number of tool calls or chain steps.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrNoBackends is returned when a tool is run in an environment without
	// tool backends.
	ErrNoBackends = errors.New("no tool backends configured")
)

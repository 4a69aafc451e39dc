package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid Config.
	ErrConfiguration = errors.New("configuration error")

	// ErrCycle indicates a namespace that contains itself, directly or
	// through its descendants.
	ErrCycle = errors.New("namespace cycle")

	// ErrInvalidName indicates an empty binding name or one containing '.'.
	// Only reported in strict mode.
	ErrInvalidName = errors.New("invalid binding name")

	// ErrDepthExceeded indicates nesting deeper than Config.MaxDepth.
	ErrDepthExceeded = errors.New("namespace depth exceeded")

	// ErrNotLeaf indicates Classify was handed a sub-namespace binding.
	ErrNotLeaf = errors.New("binding is a namespace")
)

// PathError records the dotted path at which a walk failed.
type PathError struct {
	// Path is the dotted path of the offending binding. Empty for the root.
	Path string

	// Err is the underlying error.
	Err error
}

// Error returns the path followed by the underlying error.
func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *PathError) Unwrap() error {
	return e.Err
}

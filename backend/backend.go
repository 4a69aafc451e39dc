package backend

import (
	"context"
	"errors"

	"github.com/jonwraymond/toolfoundation/model"
)

// Common errors for backend operations.
var (
	ErrBackendNotFound = errors.New("backend not found")
	ErrBackendDisabled = errors.New("backend disabled")
	ErrToolNotFound    = errors.New("tool not found in backend")
	ErrInvalidArgs     = errors.New("tool arguments must be a single map")
)

// Backend defines a source of tools that are exposed to sandboxed code.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must honor cancellation/deadlines.
// - Ordering: ListTools should return tools in a stable order.
// - Errors: use ErrBackendDisabled/ErrToolNotFound where applicable.
type Backend interface {
	// Kind returns the backend type (e.g., "local", "mcp").
	Kind() string

	// Name returns the unique instance name for this backend. It doubles as
	// the default namespace for tools that do not declare one.
	Name() string

	// Enabled returns whether this backend is currently enabled.
	Enabled() bool

	// ListTools returns all tools available from this backend.
	ListTools(ctx context.Context) ([]model.Tool, error)

	// Execute invokes a tool on this backend.
	Execute(ctx context.Context, tool string, args map[string]any) (any, error)
}

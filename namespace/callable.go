package namespace

import (
	"context"
	"errors"
)

// Type names reported by the adapters in this package.
const (
	TypeFunction = "function"
	TypeMethod   = "method"
	TypeBuiltin  = "builtin_function_or_method"
)

// BuiltinsModule is the pseudo-module reported by native callables.
const BuiltinsModule = "builtins"

// Errors returned by the adapters in this package.
var (
	// ErrNotFunc indicates FuncOf was given something other than a non-nil func.
	ErrNotFunc = errors.New("namespace: not a func")

	// ErrParamCount indicates WithParams named a different number of
	// parameters than the func declares.
	ErrParamCount = errors.New("namespace: parameter name count mismatch")

	// ErrArgCount indicates Invoke received the wrong number of arguments.
	ErrArgCount = errors.New("namespace: wrong number of arguments")

	// ErrArgType indicates an argument could not be used for a parameter.
	ErrArgType = errors.New("namespace: argument type mismatch")
)

// Callable is a binding that can be invoked from inside the sandbox.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation where it blocks.
// - Errors: invocation failures are returned, never panicked.
type Callable interface {
	Invoke(ctx context.Context, args ...any) (any, error)
}

// Documented is implemented by callables that carry documentation.
// The boolean distinguishes "no documentation" from empty documentation.
type Documented interface {
	Doc() (string, bool)
}

// Introspectable is implemented by callables that can describe their
// parameters. An unavailable signature is reported as NoSignature with a nil
// error; a non-nil error is a genuine failure.
type Introspectable interface {
	Signature() (Signature, error)
}

// Typed is implemented by callables that report their own runtime type name.
type Typed interface {
	TypeName() string
}

// Originated is implemented by callables that know their declaring package.
type Originated interface {
	Module() string
}

// Signature is a human-readable parameter signature, or the explicit
// "not available" variant.
type Signature struct {
	text string
	ok   bool
}

// NoSignature is returned by callables whose parameters cannot be introspected.
var NoSignature = Signature{}

// NewSignature returns an available signature with the given text.
func NewSignature(text string) Signature {
	return Signature{text: text, ok: true}
}

// Available reports whether the signature could be introspected.
func (s Signature) Available() bool { return s.ok }

// String returns the signature text, or "" if unavailable.
func (s Signature) String() string { return s.text }

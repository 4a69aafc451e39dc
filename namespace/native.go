package namespace

import "context"

// NativeFunc is the calling convention of host-implemented callables.
type NativeFunc func(ctx context.Context, args ...any) (any, error)

// Native is a host-implemented callable that offers no introspectable
// signature, such as a variadic print or a dispatcher over dynamic arguments.
type Native struct {
	name   string
	fn     NativeFunc
	doc    string
	hasDoc bool
	module string
}

// NewNative wraps fn under the given display name.
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{name: name, fn: fn, module: BuiltinsModule}
}

// WithDoc sets the documentation and returns n.
func (n *Native) WithDoc(doc string) *Native {
	n.doc = doc
	n.hasDoc = true
	return n
}

// WithModule sets the declaring module and returns n.
func (n *Native) WithModule(module string) *Native {
	n.module = module
	return n
}

// Name returns the display name.
func (n *Native) Name() string { return n.name }

// Invoke calls the wrapped function.
func (n *Native) Invoke(ctx context.Context, args ...any) (any, error) {
	if n.fn == nil {
		return nil, nil
	}
	return n.fn(ctx, args...)
}

// TypeName always reports TypeBuiltin.
func (n *Native) TypeName() string { return TypeBuiltin }

// Doc returns the documentation set with WithDoc.
func (n *Native) Doc() (string, bool) { return n.doc, n.hasDoc }

// Module returns the declaring module, BuiltinsModule by default.
func (n *Native) Module() string { return n.module }

// Signature always reports NoSignature.
func (n *Native) Signature() (Signature, error) { return NoSignature, nil }

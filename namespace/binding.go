package namespace

import "reflect"

// Kind identifies which variant a Binding holds.
type Kind int

const (
	// KindValue is a plain value binding.
	KindValue Kind = iota

	// KindNamespace is a nested namespace.
	KindNamespace

	// KindCallable is an invocable binding.
	KindCallable
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindCallable:
		return "callable"
	default:
		return "value"
	}
}

// Binding is the value side of a single name-to-value association.
// The zero Binding is a value binding holding nil.
type Binding struct {
	kind  Kind
	sub   *Namespace
	fn    Callable
	value any
}

// Sub returns a binding for a nested namespace. A nil namespace is treated
// as empty.
func Sub(ns *Namespace) Binding {
	if ns == nil {
		ns = New()
	}
	return Binding{kind: KindNamespace, sub: ns}
}

// Func returns a binding for a callable.
func Func(c Callable) Binding {
	return Binding{kind: KindCallable, fn: c}
}

// Value returns a binding for a plain value. The value is stored as-is even
// if it happens to be a func or a map; use Of for automatic classification.
func Value(v any) Binding {
	return Binding{kind: KindValue, value: v}
}

// Of classifies an arbitrary Go value into a Binding:
//
//   - Binding is returned unchanged
//   - *Namespace and any map with string keys become sub-namespaces
//   - a non-nil Callable becomes a callable binding
//   - a non-nil func becomes a callable via FuncOf
//   - anything else, including nil pointers, becomes a value binding
func Of(v any) Binding {
	switch x := v.(type) {
	case Binding:
		return x
	case *Namespace:
		return Sub(x)
	case map[string]any:
		return Sub(FromMap(x))
	}
	if v == nil {
		return Value(nil)
	}

	rv := reflect.ValueOf(v)
	if c, ok := v.(Callable); ok {
		if isNilRef(rv) {
			return Value(v)
		}
		return Func(c)
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Sub(fromMapValue(rv))
		}
	case reflect.Func:
		if !rv.IsNil() {
			if fn, err := FuncOf(v); err == nil {
				return Func(fn)
			}
		}
	}
	return Value(v)
}

// isNilRef reports whether rv is a nil pointer, map, slice, chan, func or
// interface.
func isNilRef(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Kind reports the variant held by b.
func (b Binding) Kind() Kind { return b.kind }

// Namespace returns the nested namespace, or nil if b is not KindNamespace.
func (b Binding) Namespace() *Namespace { return b.sub }

// Callable returns the callable, or nil if b is not KindCallable.
func (b Binding) Callable() Callable { return b.fn }

// Value returns the plain value. It is nil for non-value bindings.
func (b Binding) Value() any { return b.value }

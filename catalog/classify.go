package catalog

import (
	"reflect"
	"strings"

	"github.com/jonwraymond/toolscope/namespace"
)

// Classify describes a single leaf binding found at path inside the
// namespace whose prefix is prefix ("" at the root, otherwise ending in '.').
// Callables yield a FunctionDescriptor and values a ValueDescriptor.
//
// Sub-namespace bindings are rejected with ErrNotLeaf; recursion is the
// walker's job. A callable whose signature is unavailable is described
// without signature and parent. Any error from signature introspection is
// returned wrapped in *PathError.
func (w *Walker) Classify(path string, b namespace.Binding, prefix string) (string, Descriptor, error) {
	switch b.Kind() {
	case namespace.KindNamespace:
		return path, nil, &PathError{Path: path, Err: ErrNotLeaf}
	case namespace.KindCallable:
		d, err := describeCallable(b.Callable(), prefix)
		if err != nil {
			return path, nil, &PathError{Path: path, Err: err}
		}
		return path, d, nil
	default:
		d, ok := normalize(b.Value(), w.cfg.Placeholder)
		if !ok && w.cfg.Logger != nil {
			w.cfg.Logger.Logf("value at %s has no display form, using placeholder", path)
		}
		return path, d, nil
	}
}

func describeCallable(c namespace.Callable, prefix string) (FunctionDescriptor, error) {
	d := FunctionDescriptor{
		Type:       callableTypeName(c),
		IsCallable: true,
	}
	// A nil receiver cannot be asked for its metadata.
	if isNilCallable(c) {
		return d, nil
	}

	if doc, ok := c.(namespace.Documented); ok {
		if text, has := doc.Doc(); has {
			d.Docs = &text
		}
	}

	if o, ok := c.(namespace.Originated); ok {
		d.IsBuiltin = namespace.IsStdlib(o.Module())
	}

	if in, ok := c.(namespace.Introspectable); ok {
		sig, err := in.Signature()
		if err != nil {
			return FunctionDescriptor{}, err
		}
		if sig.Available() {
			text := sig.String()
			parent := strings.TrimSuffix(prefix, ".")
			d.Signature = &text
			d.Parent = &parent
		}
	}
	return d, nil
}

func callableTypeName(c namespace.Callable) string {
	if c == nil {
		return "nil"
	}
	if t, ok := c.(namespace.Typed); ok && !isNilCallable(c) {
		return t.TypeName()
	}
	return reflect.TypeOf(c).String()
}

func isNilCallable(c namespace.Callable) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

package namespace

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Function adapts an ordinary Go func or method value into a Callable.
// Its signature is rendered from the func type and is always available.
type Function struct {
	fn     reflect.Value
	symbol string
	module string
	method bool
	doc    string
	hasDoc bool
	params []string
}

// FuncOption configures a Function.
type FuncOption func(*Function)

// WithDoc attaches documentation to the function.
func WithDoc(doc string) FuncOption {
	return func(f *Function) {
		f.doc = doc
		f.hasDoc = true
	}
}

// WithParams names the parameters, in declaration order. Go does not keep
// parameter names at runtime, so without names only types are rendered.
func WithParams(names ...string) FuncOption {
	return func(f *Function) {
		f.params = names
	}
}

// WithModule overrides the declaring package detected from the symbol table.
func WithModule(module string) FuncOption {
	return func(f *Function) {
		f.module = module
	}
}

// FuncOf wraps fn, which must be a non-nil func value.
func FuncOf(fn any, opts ...FuncOption) (*Function, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	if v.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", ErrNotFunc, v.Type())
	}

	f := &Function{fn: v}
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		f.symbol = rf.Name()
		f.module = packagePath(f.symbol)
		f.method = strings.HasSuffix(f.symbol, "-fm")
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.params != nil && len(f.params) != v.Type().NumIn() {
		return nil, fmt.Errorf("%w: %d names for %d parameters of %s",
			ErrParamCount, len(f.params), v.Type().NumIn(), f)
	}
	return f, nil
}

// MustFunc is like FuncOf but panics on error. It is intended for
// package-level tables of known funcs.
func MustFunc(fn any, opts ...FuncOption) *Function {
	f, err := FuncOf(fn, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Symbol returns the linker symbol of the wrapped func, if known.
func (f *Function) Symbol() string { return f.symbol }

// String returns the symbol, or the func type when the symbol is unknown.
func (f *Function) String() string {
	if f.symbol != "" {
		return f.symbol
	}
	return f.fn.Type().String()
}

// TypeName reports "method" for method values and "function" otherwise.
func (f *Function) TypeName() string {
	if f.method {
		return TypeMethod
	}
	return TypeFunction
}

// Doc returns the documentation set with WithDoc.
func (f *Function) Doc() (string, bool) { return f.doc, f.hasDoc }

// Module returns the declaring package path.
func (f *Function) Module() string { return f.module }

// Signature renders the func type, for example "(s string, n int) []string".
func (f *Function) Signature() (Signature, error) {
	return NewSignature(formatSignature(f.fn.Type(), f.params)), nil
}

// Invoke calls the wrapped func. A leading context.Context parameter receives
// ctx and is not counted as an argument. If the last result is an error it is
// returned as the error; remaining results are returned as a single value,
// nil, or []any when there are several.
func (f *Function) Invoke(ctx context.Context, args ...any) (any, error) {
	t := f.fn.Type()
	in := make([]reflect.Value, 0, t.NumIn())

	start := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(&ctx).Elem())
		start = 1
	}

	fixed := t.NumIn() - start
	if t.IsVariadic() {
		fixed--
	}
	if len(args) < fixed || (!t.IsVariadic() && len(args) > fixed) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, f, fixed, len(args))
	}

	for i, a := range args {
		idx := start + i
		var pt reflect.Type
		if t.IsVariadic() && idx >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(idx)
		}
		v, err := convertArg(a, pt)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of %s: %v", ErrArgType, i, f, err)
		}
		in = append(in, v)
	}

	return splitResults(t, f.fn.Call(in))
}

func convertArg(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a %s", t)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not a %s", v.Type(), t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func splitResults(t reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && t.Out(n-1) == errorType {
		if last := out[n-1]; !last.IsNil() {
			err = last.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, err
}

func formatSignature(t reflect.Type, names []string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < t.NumIn(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if names != nil {
			b.WriteString(names[i])
			b.WriteByte(' ')
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			b.WriteString("...")
			b.WriteString(t.In(i).Elem().String())
		} else {
			b.WriteString(t.In(i).String())
		}
	}
	b.WriteByte(')')

	switch t.NumOut() {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(t.Out(0).String())
	default:
		b.WriteString(" (")
		for i := 0; i < t.NumOut(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.Out(i).String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

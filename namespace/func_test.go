package namespace

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type greeter struct{ greeting string }

func (g *greeter) Greet(name string) string { return g.greeting + ", " + name }

func sum(ctx context.Context, nums ...int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	total := 0
	for _, n := range nums {
		total += n
	}
	return total, nil
}

func TestFuncOf_RejectsNonFunc(t *testing.T) {
	var nilFunc func()
	for _, in := range []any{nil, 42, "x", nilFunc} {
		if _, err := FuncOf(in); !errors.Is(err, ErrNotFunc) {
			t.Errorf("FuncOf(%T) error = %v, want ErrNotFunc", in, err)
		}
	}
}

func TestFuncOf_ParamCountMismatch(t *testing.T) {
	_, err := FuncOf(strings.Repeat, WithParams("s"))
	if !errors.Is(err, ErrParamCount) {
		t.Errorf("error = %v, want ErrParamCount", err)
	}
}

func TestFunction_StdlibMetadata(t *testing.T) {
	fn := MustFunc(strings.Repeat, WithParams("s", "count"), WithDoc("Repeat s count times."))

	if fn.TypeName() != TypeFunction {
		t.Errorf("TypeName() = %q, want %q", fn.TypeName(), TypeFunction)
	}
	if fn.Module() != "strings" {
		t.Errorf("Module() = %q, want strings", fn.Module())
	}
	if !IsStdlib(fn.Module()) {
		t.Error("strings.Repeat should be standard library")
	}
	sig, err := fn.Signature()
	if err != nil {
		t.Fatalf("Signature() error = %v", err)
	}
	if got, want := sig.String(), "(s string, count int) string"; got != want {
		t.Errorf("Signature() = %q, want %q", got, want)
	}
	if doc, ok := fn.Doc(); !ok || doc != "Repeat s count times." {
		t.Errorf("Doc() = %q, %v", doc, ok)
	}
}

func TestFunction_NoDocIsAbsent(t *testing.T) {
	fn := MustFunc(strings.ToUpper)
	if _, ok := fn.Doc(); ok {
		t.Error("Doc() should be absent without WithDoc")
	}

	empty := MustFunc(strings.ToUpper, WithDoc(""))
	if doc, ok := empty.Doc(); !ok || doc != "" {
		t.Errorf("Doc() = %q, %v; want empty and present", doc, ok)
	}
}

func TestFunction_MethodValue(t *testing.T) {
	g := &greeter{greeting: "hi"}
	fn := MustFunc(g.Greet)

	if fn.TypeName() != TypeMethod {
		t.Errorf("TypeName() = %q, want %q", fn.TypeName(), TypeMethod)
	}
	if fn.Module() != "github.com/jonwraymond/toolscope/namespace" {
		t.Errorf("Module() = %q", fn.Module())
	}
	if IsStdlib(fn.Module()) {
		t.Error("method from this module should not be standard library")
	}
	got, err := fn.Invoke(context.Background(), "bob")
	if err != nil || got != "hi, bob" {
		t.Errorf("Invoke() = %v, %v", got, err)
	}
}

func TestFunction_SignatureShapes(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		want string
	}{
		{"no results", func() {}, "()"},
		{"variadic", sum, "(context.Context, ...int) (int, error)"},
		{"multi", strings.Cut, "(string, string) (string, string, bool)"},
		{"map", func(map[string]any) {}, "(map[string]interface {})"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, _ := MustFunc(tt.fn).Signature()
			if sig.String() != tt.want {
				t.Errorf("Signature() = %q, want %q", sig.String(), tt.want)
			}
		})
	}
}

func TestFunction_InvokeContextAndVariadic(t *testing.T) {
	fn := MustFunc(sum)

	got, err := fn.Invoke(context.Background(), 1, 2, int64(3))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != 6 {
		t.Errorf("Invoke() = %v, want 6", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fn.Invoke(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Invoke() error = %v, want context.Canceled", err)
	}
}

func TestFunction_InvokeArgErrors(t *testing.T) {
	fn := MustFunc(strings.Repeat)

	if _, err := fn.Invoke(context.Background(), "x"); !errors.Is(err, ErrArgCount) {
		t.Errorf("error = %v, want ErrArgCount", err)
	}
	if _, err := fn.Invoke(context.Background(), "x", "y"); !errors.Is(err, ErrArgType) {
		t.Errorf("error = %v, want ErrArgType", err)
	}
	if _, err := fn.Invoke(context.Background(), nil, 1); !errors.Is(err, ErrArgType) {
		t.Errorf("error = %v, want ErrArgType", err)
	}
}

func TestFunction_InvokeMultipleResults(t *testing.T) {
	got, err := MustFunc(strings.Cut).Invoke(context.Background(), "k=v", "=")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	values, ok := got.([]any)
	if !ok || len(values) != 3 {
		t.Fatalf("Invoke() = %#v, want 3 values", got)
	}
	if values[0] != "k" || values[1] != "v" || values[2] != true {
		t.Errorf("Invoke() = %v", values)
	}
}

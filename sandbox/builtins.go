package sandbox

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jonwraymond/toolscope/namespace"
)

// ErrUnsupportedArg is returned by builtins given an argument they cannot
// operate on.
var ErrUnsupportedArg = errors.New("unsupported argument")

type builtinFunc struct {
	name string
	fn   *namespace.Function
}

var stdlibBuiltins = []builtinFunc{
	{"upper", namespace.MustFunc(strings.ToUpper, namespace.WithParams("s"),
		namespace.WithDoc("Return s with all letters mapped to upper case."))},
	{"lower", namespace.MustFunc(strings.ToLower, namespace.WithParams("s"),
		namespace.WithDoc("Return s with all letters mapped to lower case."))},
	{"strip", namespace.MustFunc(strings.TrimSpace, namespace.WithParams("s"),
		namespace.WithDoc("Return s without leading and trailing white space."))},
	{"split", namespace.MustFunc(strings.Split, namespace.WithParams("s", "sep"),
		namespace.WithDoc("Split s into all substrings separated by sep."))},
	{"join", namespace.MustFunc(strings.Join, namespace.WithParams("elems", "sep"),
		namespace.WithDoc("Concatenate elems, placing sep between them."))},
	{"contains", namespace.MustFunc(strings.Contains, namespace.WithParams("s", "substr"))},
	{"str", namespace.MustFunc(strconv.Itoa, namespace.WithParams("i"),
		namespace.WithDoc("Return the decimal string form of i."))},
	{"int", namespace.MustFunc(strconv.Atoi, namespace.WithParams("s"),
		namespace.WithDoc("Parse s as a decimal integer."))},
	{"abs", namespace.MustFunc(math.Abs, namespace.WithParams("x"))},
	{"round", namespace.MustFunc(math.Round, namespace.WithParams("x"),
		namespace.WithDoc("Round x to the nearest integer, rounding half away from zero."))},
}

func (s *Session) builtins() *namespace.Namespace {
	ns := namespace.New()
	for _, b := range stdlibBuiltins {
		ns.Set(b.name, namespace.Func(b.fn))
	}

	ns.Set("len", namespace.Func(namespace.NewNative("len", builtinLen).
		WithDoc("Return the number of items in a string, slice, array or map.")))
	ns.Set("sorted", namespace.Func(namespace.NewNative("sorted", builtinSorted).
		WithDoc("Return a new sorted list from the items in a slice.")))
	ns.Set("print", namespace.Func(namespace.NewNative("print", func(_ context.Context, args ...any) (any, error) {
		s.Println(args...)
		return nil, nil
	}).WithDoc("Print the values to the captured output, separated by spaces.")))
	return ns
}

func builtinLen(_ context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: len takes 1 argument, got %d", namespace.ErrArgCount, len(args))
	}
	v := reflect.ValueOf(args[0])
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return v.Len(), nil
	}
	return nil, fmt.Errorf("%w: len of %T", ErrUnsupportedArg, args[0])
}

func builtinSorted(_ context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: sorted takes 1 argument, got %d", namespace.ErrArgCount, len(args))
	}
	switch v := args[0].(type) {
	case []string:
		return slices.Sorted(slices.Values(v)), nil
	case []int:
		return slices.Sorted(slices.Values(v)), nil
	case []float64:
		return slices.Sorted(slices.Values(v)), nil
	case []any:
		return sortAny(v)
	}
	return nil, fmt.Errorf("%w: sorted of %T", ErrUnsupportedArg, args[0])
}

// sortAny sorts a slice whose items are all strings or all float64s, the
// shapes decoded JSON arrays take.
func sortAny(items []any) ([]any, error) {
	out := slices.Clone(items)
	if len(out) == 0 {
		return out, nil
	}
	switch out[0].(type) {
	case string:
		for _, it := range out {
			if _, ok := it.(string); !ok {
				return nil, fmt.Errorf("%w: mixed item types", ErrUnsupportedArg)
			}
		}
		slices.SortStableFunc(out, func(a, b any) int { return strings.Compare(a.(string), b.(string)) })
	case float64:
		for _, it := range out {
			if _, ok := it.(float64); !ok {
				return nil, fmt.Errorf("%w: mixed item types", ErrUnsupportedArg)
			}
		}
		slices.SortStableFunc(out, func(a, b any) int {
			x, y := a.(float64), b.(float64)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		})
	default:
		return nil, fmt.Errorf("%w: items of %T", ErrUnsupportedArg, out[0])
	}
	return out, nil
}

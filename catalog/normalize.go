package catalog

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Normalize describes a plain value using DefaultPlaceholder for values that
// cannot be displayed. It never fails.
func Normalize(v any) ValueDescriptor {
	d, _ := normalize(v, DefaultPlaceholder)
	return d
}

// normalize reports false when the display form failed and the placeholder
// was used.
func normalize(v any, placeholder string) (ValueDescriptor, bool) {
	d := ValueDescriptor{Type: valueTypeName(v)}
	if isScalar(v) {
		d.Value = v
		return d, true
	}

	s, ok := display(v)
	if !ok {
		s = placeholder
	}
	d.Value = s
	return d, ok
}

// isScalar reports whether v's dynamic type is exactly one of the
// predeclared boolean, string, integer or floating-point types. Named types
// built on them do not qualify. Non-finite floats have no JSON form and are
// displayed instead.
func isScalar(v any) bool {
	switch x := v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return false
}

func valueTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// panicMarkers are the texts fmt embeds when a formatting method panics.
var panicMarkers = []string{
	"%!v(PANIC=String method: ",
	"%!v(PANIC=Error method: ",
	"%!v(PANIC=Format method: ",
}

// display renders v with %v. fmt recovers from panicking String, Error and
// Format methods by embedding a PANIC marker; that is treated as a failure
// too.
func display(v any) (s string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s, ok = "", false
		}
	}()
	s = fmt.Sprint(v)
	for _, marker := range panicMarkers {
		if strings.Contains(s, marker) {
			return "", false
		}
	}
	return s, true
}

package catalog

import (
	"context"
	"sync"

	"github.com/jonwraymond/toolscope/namespace"
)

// stubCallable implements every optional callable interface with
// configurable returns.
type stubCallable struct {
	typeName string
	doc      *string
	module   string
	sig      namespace.Signature
	sigErr   error
}

func (s *stubCallable) Invoke(context.Context, ...any) (any, error) { return nil, nil }

func (s *stubCallable) TypeName() string { return s.typeName }

func (s *stubCallable) Doc() (string, bool) {
	if s.doc == nil {
		return "", false
	}
	return *s.doc, true
}

func (s *stubCallable) Module() string { return s.module }

func (s *stubCallable) Signature() (namespace.Signature, error) { return s.sig, s.sigErr }

// bareCallable implements only namespace.Callable.
type bareCallable struct{}

func (bareCallable) Invoke(context.Context, ...any) (any, error) { return nil, nil }

// panicStringer fails when displayed.
type panicStringer struct{}

func (panicStringer) String() string { panic("boom") }

// errorPanicker fails when displayed through its Error method.
type errorPanicker struct{}

func (errorPanicker) Error() string { panic("boom") }

// level is a named integer type; it must not pass through as a scalar.
type level int

func (l level) String() string { return [...]string{"low", "high"}[l] }

// mockLogger records formatted messages.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, format)
}

func strPtr(s string) *string { return &s }

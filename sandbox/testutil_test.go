package sandbox

import (
	"context"
	"errors"
	"sync"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/jonwraymond/toolscope/backend"
	"github.com/jonwraymond/toolscope/backend/local"
)

// mockIndex implements index.Index for testing.
type mockIndex struct {
	mu sync.Mutex

	// Configurable returns
	searchResult     []index.Summary
	searchErr        error
	namespacesResult []string

	// Call tracking
	searchCalls     []searchCall
	namespacesCalls int
}

type searchCall struct {
	query string
	limit int
}

func (m *mockIndex) Search(query string, limit int) ([]index.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, searchCall{query, limit})
	return m.searchResult, m.searchErr
}

func (m *mockIndex) SearchPage(query string, limit int, _ string) ([]index.Summary, string, error) {
	results, err := m.Search(query, limit)
	return results, "", err
}

func (m *mockIndex) ListNamespaces() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namespacesCalls++
	return m.namespacesResult, nil
}

func (m *mockIndex) ListNamespacesPage(limit int, _ string) ([]string, string, error) {
	results, err := m.ListNamespaces()
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, "", err
}

func (m *mockIndex) GetTool(_ string) (model.Tool, model.ToolBackend, error) {
	return model.Tool{}, model.ToolBackend{}, errors.New("tool not found")
}

func (m *mockIndex) GetAllBackends(_ string) ([]model.ToolBackend, error) {
	return nil, nil
}

func (m *mockIndex) RegisterTool(_ model.Tool, _ model.ToolBackend) error {
	return nil
}

func (m *mockIndex) RegisterTools(_ []index.ToolRegistration) error {
	return nil
}

func (m *mockIndex) RegisterToolsFromMCP(_ string, _ []model.Tool) error {
	return nil
}

func (m *mockIndex) UnregisterBackend(_ string, _ model.BackendKind, _ string) error {
	return nil
}

// mockStore implements tooldoc.Store for testing.
type mockStore struct {
	mu sync.Mutex

	// Configurable returns
	describeResult tooldoc.ToolDoc
	describeErr    error
	examplesResult []tooldoc.ToolExample
	examplesErr    error

	// Call tracking
	describeCalls []describeCall
	examplesCalls []examplesCall
}

type describeCall struct {
	id    string
	level tooldoc.DetailLevel
}

type examplesCall struct {
	id          string
	maxExamples int
}

func (m *mockStore) DescribeTool(id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.describeCalls = append(m.describeCalls, describeCall{id, level})
	return m.describeResult, m.describeErr
}

func (m *mockStore) ListExamples(id string, maxExamples int) ([]tooldoc.ToolExample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.examplesCalls = append(m.examplesCalls, examplesCall{id, maxExamples})
	return m.examplesResult, m.examplesErr
}

// mockLogger records formatted messages.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Logf(format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, format)
}

// testBackends returns an aggregator over a "math" backend with add and
// fail tools.
func testBackends() *backend.Aggregator {
	math := local.New("math")
	math.RegisterHandler("add", local.ToolDef{
		Description: "Adds a and b",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []any{"a", "b"},
		},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			a, _ := args["a"].(float64)
			b, _ := args["b"].(float64)
			if prev, ok := args["previous"].(float64); ok {
				a += prev
			}
			return a + b, nil
		},
	})
	math.RegisterHandler("fail", local.ToolDef{
		Handler: func(context.Context, map[string]any) (any, error) {
			return nil, errTool
		},
	})

	reg := backend.NewRegistry()
	_ = reg.Register(math)
	return backend.NewAggregator(reg)
}

var errTool = &toolError{"tool failed"}

type toolError struct{ msg string }

func (e *toolError) Error() string { return e.msg }

func testConfig() Config {
	return Config{
		Index:    &mockIndex{},
		Docs:     &mockStore{},
		Backends: testBackends(),
	}
}

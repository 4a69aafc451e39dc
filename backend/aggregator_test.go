package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/jonwraymond/toolscope/namespace"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func testRegistry() *Registry {
	registry := NewRegistry()

	_ = registry.Register(&mockBackend{
		kind:    "local",
		name:    "local1",
		enabled: true,
		tools: []model.Tool{
			{Tool: mcp.Tool{Name: "tool_b", Description: "Second tool"}, Namespace: "local1"},
			{Tool: mcp.Tool{Name: "tool_a"}, Namespace: "local1"},
		},
	})

	_ = registry.Register(&mockBackend{
		kind:    "mcp",
		name:    "github",
		enabled: true,
		tools: []model.Tool{
			{Tool: mcp.Tool{Name: "create-issue"}},
		},
	})

	_ = registry.Register(&mockBackend{
		kind:    "local",
		name:    "disabled",
		enabled: false,
		tools: []model.Tool{
			{Tool: mcp.Tool{Name: "should_not_appear"}, Namespace: "disabled"},
		},
	})
	return registry
}

func TestAggregator_ListAllTools(t *testing.T) {
	agg := NewAggregator(testRegistry())

	tools, err := agg.ListAllTools(context.Background())
	if err != nil {
		t.Fatalf("ListAllTools() error = %v", err)
	}

	want := []string{"github:create-issue", "local1:tool_a", "local1:tool_b"}
	if len(tools) != len(want) {
		t.Fatalf("ListAllTools() returned %d tools, want %d", len(tools), len(want))
	}
	for i, tool := range tools {
		if got := FormatToolID(tool.Namespace, tool.Name); got != want[i] {
			t.Errorf("tools[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestAggregator_ListAllToolsError(t *testing.T) {
	registry := NewRegistry()
	sentinel := errors.New("unreachable")
	_ = registry.Register(&mockBackend{name: "remote", enabled: true, listErr: sentinel})

	_, err := NewAggregator(registry).ListAllTools(context.Background())
	if !errors.Is(err, sentinel) {
		t.Errorf("ListAllTools() error = %v, want sentinel", err)
	}
}

func TestAggregator_ListAllToolsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(testRegistry()).ListAllTools(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ListAllTools() error = %v, want context.Canceled", err)
	}
}

func TestAggregator_Execute(t *testing.T) {
	registry := NewRegistry()

	_ = registry.Register(&mockBackend{
		kind:    "local",
		name:    "local",
		enabled: true,
		execFn: func(_ context.Context, tool string, args map[string]any) (any, error) {
			if tool == "echo" {
				return args["msg"], nil
			}
			return nil, ErrToolNotFound
		},
	})

	agg := NewAggregator(registry)

	result, err := agg.Execute(context.Background(), "local:echo", map[string]any{
		"msg": "hello",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "hello" {
		t.Errorf("Execute() = %v, want %v", result, "hello")
	}
}

func TestAggregator_ExecuteErrors(t *testing.T) {
	agg := NewAggregator(testRegistry())
	ctx := context.Background()

	if _, err := agg.Execute(ctx, "nonexistent:tool", nil); !errors.Is(err, ErrBackendNotFound) {
		t.Errorf("Execute(nonexistent) error = %v", err)
	}
	if _, err := agg.Execute(ctx, "disabled:should_not_appear", nil); !errors.Is(err, ErrBackendDisabled) {
		t.Errorf("Execute(disabled) error = %v", err)
	}
	if _, err := agg.Execute(ctx, "no_namespace", nil); !errors.Is(err, ErrInvalidToolID) {
		t.Errorf("Execute(no_namespace) error = %v", err)
	}
}

func TestAggregator_Namespace(t *testing.T) {
	agg := NewAggregator(testRegistry(), WithDocs(&mockDocs{
		summaries: map[string]string{"local1:tool_a": "First tool"},
	}))

	root, err := agg.Namespace(context.Background())
	if err != nil {
		t.Fatalf("Namespace() error = %v", err)
	}

	var names []string
	for name := range root.All() {
		names = append(names, name)
	}
	if len(names) != 2 || names[0] != "github" || names[1] != "local1" {
		t.Fatalf("namespaces = %v, want [github local1]", names)
	}

	gh, _ := root.Get("github")
	issue, ok := gh.Namespace().Get("create_issue")
	if !ok || issue.Kind() != namespace.KindCallable {
		t.Fatalf("github.create_issue = %v, %v", issue, ok)
	}
	if id := issue.Callable().(*ToolBinding).ID(); id != "github:create-issue" {
		t.Errorf("ID() = %q", id)
	}

	local, _ := root.Get("local1")
	tests := []struct {
		name    string
		wantDoc string
		wantOK  bool
	}{
		{"tool_a", "First tool", true},
		{"tool_b", "Second tool", true},
	}
	for _, tt := range tests {
		b, ok := local.Namespace().Get(tt.name)
		if !ok {
			t.Fatalf("local1.%s missing", tt.name)
		}
		doc, hasDoc := b.Callable().(namespace.Documented).Doc()
		if doc != tt.wantDoc || hasDoc != tt.wantOK {
			t.Errorf("%s Doc() = %q, %v, want %q, %v", tt.name, doc, hasDoc, tt.wantDoc, tt.wantOK)
		}
	}

	b, _ := gh.Namespace().Get("create_issue")
	if _, hasDoc := b.Callable().(namespace.Documented).Doc(); hasDoc {
		t.Error("tool without description or doc should have no docs")
	}
}

func TestAggregator_ParseToolID(t *testing.T) {
	tests := []struct {
		id          string
		wantBackend string
		wantTool    string
		wantErr     bool
	}{
		{"local:echo", "local", "echo", false},
		{"github:create_issue", "github", "create_issue", false},
		{"my-backend:my_tool", "my-backend", "my_tool", false},
		{"no_namespace", "", "no_namespace", false},
		{"", "", "", true},
		{"bad:format:tool", "", "", true},
	}

	for _, tt := range tests {
		backend, tool, err := ParseToolID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseToolID(%q) error = %v, wantErr = %v", tt.id, err, tt.wantErr)
			continue
		}
		if backend != tt.wantBackend {
			t.Errorf("ParseToolID(%q) backend = %q, want %q", tt.id, backend, tt.wantBackend)
		}
		if tool != tt.wantTool {
			t.Errorf("ParseToolID(%q) tool = %q, want %q", tt.id, tool, tt.wantTool)
		}
	}
}

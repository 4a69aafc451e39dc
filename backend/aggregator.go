package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/jonwraymond/toolscope/namespace"
)

// ErrInvalidToolID is returned for malformed tool IDs.
var ErrInvalidToolID = errors.New("invalid tool ID format")

// Aggregator combines tools from multiple backends.
type Aggregator struct {
	registry *Registry
	docs     tooldoc.Store
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithDocs sets the documentation store consulted for tool binding docs.
func WithDocs(docs tooldoc.Store) AggregatorOption {
	return func(a *Aggregator) { a.docs = docs }
}

// NewAggregator creates a new tool aggregator.
func NewAggregator(registry *Registry, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{registry: registry}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListAllTools returns tools from all enabled backends ordered by namespace
// and then by name. Tools without a namespace take the backend's name.
func (a *Aggregator) ListAllTools(ctx context.Context) ([]model.Tool, error) {
	all := make([]model.Tool, 0)

	for _, b := range a.registry.ListEnabled() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tools, err := b.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", b.Name(), err)
		}
		for i := range tools {
			if tools[i].Namespace == "" {
				tools[i].Namespace = b.Name()
			}
			all = append(all, tools[i])
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Namespace != all[j].Namespace {
			return all[i].Namespace < all[j].Namespace
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

// Execute invokes a tool through the backend registry.
func (a *Aggregator) Execute(ctx context.Context, toolID string, args map[string]any) (any, error) {
	backendName, tool, err := ParseToolID(toolID)
	if err != nil {
		return nil, err
	}
	if backendName == "" {
		return nil, ErrInvalidToolID
	}

	b, ok := a.registry.Get(backendName)
	if !ok {
		return nil, ErrBackendNotFound
	}
	if !b.Enabled() {
		return nil, ErrBackendDisabled
	}
	return b.Execute(ctx, tool, args)
}

// Namespace projects every enabled tool into a namespace tree keyed by
// namespace and tool name. Both levels are reduced to identifiers, so
// "my-backend:get.item" is reachable as my_backend.get_item.
func (a *Aggregator) Namespace(ctx context.Context) (*namespace.Namespace, error) {
	tools, err := a.ListAllTools(ctx)
	if err != nil {
		return nil, err
	}

	root := namespace.New()
	for _, tool := range tools {
		key := namespace.Identifier(tool.Namespace)
		var child *namespace.Namespace
		if b, ok := root.Get(key); ok && b.Kind() == namespace.KindNamespace {
			child = b.Namespace()
		} else {
			child = namespace.New()
			root.Set(key, namespace.Sub(child))
		}
		child.Set(namespace.Identifier(tool.Name), namespace.Func(a.binding(tool)))
	}
	return root, nil
}

func (a *Aggregator) binding(tool model.Tool) *ToolBinding {
	tb := &ToolBinding{
		id:     FormatToolID(tool.Namespace, tool.Name),
		tool:   tool,
		runner: a,
	}
	if a.docs != nil {
		if doc, err := a.docs.DescribeTool(tb.id, tooldoc.DetailSummary); err == nil && doc.Summary != "" {
			tb.doc, tb.hasDoc = doc.Summary, true
			return tb
		}
	}
	if tool.Description != "" {
		tb.doc, tb.hasDoc = tool.Description, true
	}
	return tb
}

// ParseToolID splits a tool ID into backend and tool name.
func ParseToolID(id string) (backendName, tool string, err error) {
	backendName, tool, err = model.ParseToolID(id)
	if err != nil {
		return "", "", ErrInvalidToolID
	}
	return backendName, tool, nil
}

// FormatToolID builds a tool ID from backend and tool name.
func FormatToolID(backendName, tool string) string {
	if backendName == "" {
		return tool
	}
	return fmt.Sprintf("%s:%s", backendName, tool)
}

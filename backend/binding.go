package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/jonwraymond/toolscope/namespace"
)

// TypeTool is the type name reported for tool bindings.
const TypeTool = "tool"

// ErrInvalidSchema is returned when a tool's input schema cannot be read as
// a JSON object.
var ErrInvalidSchema = errors.New("invalid input schema")

type toolRunner interface {
	Execute(ctx context.Context, toolID string, args map[string]any) (any, error)
}

// ToolBinding exposes a backend tool as a namespace callable. It is invoked
// with no arguments or with a single map of named arguments.
type ToolBinding struct {
	id     string
	tool   model.Tool
	runner toolRunner
	doc    string
	hasDoc bool
}

// ID returns the canonical "namespace:name" tool ID.
func (b *ToolBinding) ID() string { return b.id }

// Tool returns the tool definition behind the binding.
func (b *ToolBinding) Tool() model.Tool { return b.tool }

// Invoke executes the tool through its backend.
func (b *ToolBinding) Invoke(ctx context.Context, args ...any) (any, error) {
	var in map[string]any
	switch len(args) {
	case 0:
	case 1:
		m, ok := args[0].(map[string]any)
		if !ok && args[0] != nil {
			return nil, fmt.Errorf("%s: %w", b.id, ErrInvalidArgs)
		}
		in = m
	default:
		return nil, fmt.Errorf("%s: %w", b.id, ErrInvalidArgs)
	}
	return b.runner.Execute(ctx, b.id, in)
}

// TypeName reports TypeTool.
func (b *ToolBinding) TypeName() string { return TypeTool }

// Doc returns the docs-store summary, falling back to the tool description.
func (b *ToolBinding) Doc() (string, bool) { return b.doc, b.hasDoc }

// Signature renders the input schema's properties as a parameter list.
// Required parameters come first in declaration order; optional ones
// follow sorted by name and carry a "?" suffix. A tool without an input
// schema has no signature.
func (b *ToolBinding) Signature() (namespace.Signature, error) {
	return schemaSignature(b.tool.InputSchema)
}

func schemaSignature(schema any) (namespace.Signature, error) {
	if schema == nil {
		return namespace.NoSignature, nil
	}

	obj, ok := schema.(map[string]any)
	if !ok {
		data, err := json.Marshal(schema)
		if err != nil {
			return namespace.NoSignature, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return namespace.NoSignature, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
	}
	if obj == nil {
		return namespace.NoSignature, nil
	}

	props, _ := obj["properties"].(map[string]any)
	seen := make(map[string]bool, len(props))
	params := make([]string, 0, len(props))

	if req, ok := obj["required"].([]any); ok {
		for _, r := range req {
			name, ok := r.(string)
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			params = append(params, name+" "+propertyType(props[name]))
		}
	}

	optional := make([]string, 0, len(props))
	for name := range props {
		if !seen[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	for _, name := range optional {
		params = append(params, name+"? "+propertyType(props[name]))
	}

	return namespace.NewSignature("(" + strings.Join(params, ", ") + ")"), nil
}

func propertyType(prop any) string {
	p, ok := prop.(map[string]any)
	if !ok {
		return "any"
	}
	switch t := p["type"].(type) {
	case string:
		if t == "array" {
			if items := propertyType(p["items"]); items != "any" {
				return "[]" + items
			}
		}
		return t
	case []any:
		names := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, "|")
		}
	}
	return "any"
}

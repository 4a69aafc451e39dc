// Package backend provides tool source abstractions, a registry, and the
// projection of tools into sandbox namespaces.
//
// # Backends
//
// A Backend lists tools and executes them. The local subpackage provides an
// in-process implementation backed by handler functions.
//
// # Registry
//
// The Registry holds named backends and lists them in name order:
//
//	registry := backend.NewRegistry()
//	registry.Register(localBackend)
//
//	for _, b := range registry.List() {
//	    fmt.Printf("%s: %s\n", b.Kind(), b.Name())
//	}
//
// # Aggregator
//
// The Aggregator combines enabled backends for unified tool access and
// projects them as namespace bindings:
//
//	agg := backend.NewAggregator(registry, backend.WithDocs(docs))
//	result, _ := agg.Execute(ctx, "backend:tool", args)
//	ns, _ := agg.Namespace(ctx)
//
// Each projected tool is a ToolBinding whose signature is rendered from the
// tool's input schema, e.g. "(path string, limit? integer)".
package backend

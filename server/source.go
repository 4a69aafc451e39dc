package server

import (
	"context"

	"github.com/jonwraymond/toolscope/namespace"
)

// Source provides the namespace tree to flatten. It is called once per
// catalog request.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: implementations should honor cancellation.
// - Ownership: the returned tree must not be mutated while it is walked.
type Source interface {
	Namespace(ctx context.Context) (*namespace.Namespace, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*namespace.Namespace, error)

// Namespace calls f(ctx).
func (f SourceFunc) Namespace(ctx context.Context) (*namespace.Namespace, error) {
	return f(ctx)
}

// StaticSource always returns ns.
func StaticSource(ns *namespace.Namespace) Source {
	return SourceFunc(func(context.Context) (*namespace.Namespace, error) {
		return ns, nil
	})
}

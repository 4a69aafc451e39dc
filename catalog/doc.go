// Package catalog flattens a sandbox namespace tree into a JSON-serializable
// catalog of descriptors keyed by fully-qualified dotted path.
//
// The catalog is intended for documentation and tooling (reference docs,
// autocomplete). It describes bindings; it never invokes them.
//
// # Traversal
//
// [Walker.Walk] visits a [namespace.Namespace] depth-first in insertion order.
// Each binding is handled according to its variant:
//
//   - Sub-namespace: recursed into with the prefix "<path>."
//   - Callable: described by a [FunctionDescriptor]
//   - Value: described by a [ValueDescriptor] via [Normalize]
//
// All descriptors land in one flat [Catalog]. If two branches produce the
// same dotted path, the later descriptor replaces the earlier one but keeps
// its position.
//
// # Descriptors
//
// A function descriptor always carries type, docs (null when the callable has
// no documentation), is_callable and is_builtin. The signature and parent
// fields are present together, only when the callable's signature can be
// introspected:
//
//	{"type": "function", "docs": "Convert a string to dict", "is_callable": true,
//	 "is_builtin": false, "signature": "(s)", "parent": "json"}
//
// A value descriptor carries the value itself for the predeclared boolean,
// string, integer and floating-point types, and its %v display form otherwise:
//
//	{"type": "int", "value": 100, "is_callable": false}
//
// # Failure Model
//
// A missing signature is not an error. Any other introspection error, a
// namespace cycle, or (with [Config].Strict) an invalid binding name aborts
// the walk with a [*PathError]; no partial catalog is returned. A value whose
// display form cannot be produced degrades to a placeholder instead.
//
// # Concurrency
//
// A Walker holds only its configuration, so one Walker may be shared by any
// number of goroutines. Each Walk call owns its result.
package catalog

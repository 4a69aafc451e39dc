// Package namespace models the bindings visible inside a sandboxed evaluation
// context as a tree of named entries.
//
// A [Namespace] is an ordered mapping from binding name to [Binding]. Each
// binding is exactly one of three variants:
//
//   - a nested [Namespace] ([KindNamespace])
//   - a [Callable] ([KindCallable])
//   - a plain value ([KindValue])
//
// Insertion order is preserved, so anything derived from a namespace (for
// example a flattened catalog) is deterministic.
//
// # Callables
//
// A callable is any value that exposes an invocation interface ([Callable]).
// Metadata is optional and discovered through small capability interfaces:
//
//   - [Documented]: associated documentation, absent is distinct from empty
//   - [Introspectable]: a parameter [Signature], or [NoSignature]
//   - [Typed]: the runtime type name reported for the callable
//   - [Originated]: the declaring package, used to recognise built-ins
//
// Two adapters are provided. [FuncOf] wraps an arbitrary Go func (or method
// value) using reflection; its signature is always introspectable. [NewNative]
// wraps a variadic host function that offers no signature.
//
// # Building Trees
//
//	ns := namespace.New().
//	    Bind("max_int", 100).
//	    Set("json", namespace.Sub(namespace.New().
//	        Bind("marshal", json.Marshal)))
//
// [Of] lifts plain Go values into bindings: *Namespace and map[string]any
// become sub-namespaces, funcs become callables and everything else is a
// value. [FromMap] does the same for a whole map, sorting keys because Go maps
// have no stable order.
package namespace

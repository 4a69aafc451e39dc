// Package sandbox builds the global namespace that sandboxed code snippets
// run against.
//
// An Environment combines tool discovery, tool documentation, optional tool
// backends and a small set of host builtins into a single namespace tree:
//
//	tools.*      metatools: search_tools, list_namespaces, describe_tool, ...
//	<backend>.*  tools projected from enabled backends
//	builtins.*   standard-library helpers and host natives such as print
//	config.*     execution defaults and limits as plain values
//	flags.*      boolean environment flags
//
// Each call to Globals starts a fresh Session, so tool-call limits and the
// captured output are scoped to one snippet execution.
//
// # Usage
//
//	env, err := sandbox.New(sandbox.Config{
//	    Index:    idx,
//	    Docs:     docs,
//	    Backends: backend.NewAggregator(registry),
//	    Flags:    map[string]bool{"in_test": true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	globals, err := env.Globals(ctx)
//
// The resulting tree is what the catalog package flattens for clients.
package sandbox

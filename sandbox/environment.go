package sandbox

import (
	"context"
	"maps"
	"slices"

	"github.com/jonwraymond/toolscope/namespace"
)

// Reserved top-level namespaces. Backend namespaces with these names are
// skipped.
const (
	ToolsNamespace    = "tools"
	BuiltinsNamespace = namespace.BuiltinsModule
	ConfigNamespace   = "config"
	FlagsNamespace    = "flags"
)

// Environment provides sandbox globals. It is safe for concurrent use.
type Environment struct {
	cfg Config
}

// New validates cfg and returns an Environment.
func New(cfg Config) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.Flags = maps.Clone(cfg.Flags)
	return &Environment{cfg: cfg}, nil
}

// Config returns the environment configuration with defaults applied.
func (e *Environment) Config() Config {
	return e.cfg
}

// NewSession starts a session with fresh limits and output capture.
func (e *Environment) NewSession() *Session {
	return newSession(e)
}

// Globals builds the global namespace for a new session.
func (e *Environment) Globals(ctx context.Context) (*namespace.Namespace, error) {
	return e.NewSession().Globals(ctx)
}

// Globals builds the global namespace with the session's metatools bound
// under "tools". ctx bounds the listing of backend tools.
func (s *Session) Globals(ctx context.Context) (*namespace.Namespace, error) {
	env := s.env
	root := namespace.New()
	root.Set(ToolsNamespace, namespace.Sub(s.metatools()))

	if env.cfg.Backends != nil {
		tools, err := env.cfg.Backends.Namespace(ctx)
		if err != nil {
			return nil, err
		}
		for name, b := range tools.All() {
			if isReserved(name) {
				if s.logger != nil {
					s.logger.Logf("sandbox: skipping backend namespace %q: name is reserved", name)
				}
				continue
			}
			root.Set(name, b)
		}
	}

	root.Set(BuiltinsNamespace, namespace.Sub(s.builtins()))
	root.Set(ConfigNamespace, namespace.Sub(env.configValues()))
	root.Set(FlagsNamespace, namespace.Sub(env.flags()))

	if s.logger != nil {
		s.logger.Logf("sandbox: built globals with %d namespaces", root.Len())
	}
	return root, nil
}

func isReserved(name string) bool {
	switch name {
	case ToolsNamespace, BuiltinsNamespace, ConfigNamespace, FlagsNamespace:
		return true
	}
	return false
}

func (s *Session) metatools() *namespace.Namespace {
	return namespace.New().
		Set("search_tools", method(s.SearchTools,
			"Search for tools matching query, returning up to limit summaries.",
			"ctx", "query", "limit")).
		Set("list_namespaces", method(s.ListNamespaces,
			"List all tool namespaces.",
			"ctx")).
		Set("describe_tool", method(s.DescribeTool,
			"Describe a tool at the given detail level.",
			"ctx", "id", "level")).
		Set("list_tool_examples", method(s.ListToolExamples,
			"List up to max usage examples for a tool.",
			"ctx", "id", "max")).
		Set("run_tool", method(s.RunTool,
			"Run a tool by ID with named arguments.",
			"ctx", "id", "args")).
		Set("run_chain", method(s.RunChain,
			"Run a sequence of tool calls, optionally feeding each result to the next step.",
			"ctx", "steps"))
}

func method(fn any, doc string, params ...string) namespace.Binding {
	return namespace.Func(namespace.MustFunc(fn,
		namespace.WithDoc(doc),
		namespace.WithParams(params...)))
}

func (e *Environment) configValues() *namespace.Namespace {
	return namespace.New().
		Bind("language", e.cfg.DefaultLanguage).
		Bind("timeout", e.cfg.DefaultTimeout).
		Bind("max_tool_calls", e.cfg.MaxToolCalls).
		Bind("max_chain_steps", e.cfg.MaxChainSteps)
}

func (e *Environment) flags() *namespace.Namespace {
	ns := namespace.New()
	for _, name := range slices.Sorted(maps.Keys(e.cfg.Flags)) {
		ns.Bind(name, e.cfg.Flags[name])
	}
	return ns
}

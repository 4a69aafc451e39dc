package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/jonwraymond/toolscope/backend"
	"github.com/jonwraymond/toolscope/backend/local"
	"github.com/jonwraymond/toolscope/catalog"
	"github.com/jonwraymond/toolscope/config"
	"github.com/jonwraymond/toolscope/namespace"
	"github.com/jonwraymond/toolscope/sandbox"
	"github.com/jonwraymond/toolscope/server"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// app ties the configuration to a sandbox environment and catalog server.
// The environment is rebuilt whenever the configuration changes.
type app struct {
	holder  *config.Holder
	logger  zerolog.Logger
	metrics *server.Metrics
	env     atomic.Pointer[sandbox.Environment]
	server  *server.Server

	applyMu sync.Mutex
}

// newApp builds the environment and server for the configuration in
// holder and subscribes to its changes.
func newApp(holder *config.Holder, logger zerolog.Logger, metrics *server.Metrics) (*app, error) {
	a := &app{holder: holder, logger: logger, metrics: metrics}

	cfg := holder.Get()
	env, err := buildEnvironment(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.env.Store(env)

	walker, err := newWalker(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []server.Option{server.WithLogger(logger), server.WithWalker(walker)}
	if metrics != nil {
		opts = append(opts, server.WithMetrics(metrics))
	}
	a.server, err = server.New(server.SourceFunc(a.globals), opts...)
	if err != nil {
		return nil, err
	}

	holder.OnChange(a.apply)
	return a, nil
}

// globals builds the namespace for a fresh sandbox session.
func (a *app) globals(ctx context.Context) (*namespace.Namespace, error) {
	return a.env.Load().Globals(ctx)
}

// apply swaps in an environment and walker built from cfg. A configuration
// that cannot be applied leaves the previous one serving.
func (a *app) apply(cfg *config.Config) {
	a.applyMu.Lock()
	defer a.applyMu.Unlock()

	env, err := buildEnvironment(cfg, a.logger)
	if err != nil {
		a.logger.Error().Err(err).Msg("rebuild sandbox environment failed")
		return
	}
	walker, err := newWalker(cfg, a.logger)
	if err != nil {
		a.logger.Error().Err(err).Msg("rebuild catalog walker failed")
		return
	}
	a.env.Store(env)
	a.server.SetWalker(walker)
	if a.metrics != nil {
		a.metrics.ConfigReloads.Inc()
	}
}

func newWalker(cfg *config.Config, logger zerolog.Logger) (*catalog.Walker, error) {
	return catalog.New(catalog.Config{
		Strict:      cfg.Catalog.Strict,
		MaxDepth:    cfg.Catalog.MaxDepth,
		Placeholder: cfg.Catalog.Placeholder,
		Logger:      server.LogfAdapter{Logger: logger},
	})
}

// buildEnvironment registers the declared tools with a fresh index, doc
// store and local backends, then creates the sandbox environment over them.
func buildEnvironment(cfg *config.Config, logger zerolog.Logger) (*sandbox.Environment, error) {
	idx := index.NewInMemoryIndex()
	docs := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})
	reg := backend.NewRegistry()
	locals := make(map[string]*local.Backend)

	for _, tc := range cfg.Tools {
		schema := tc.InputSchema()
		if schema == nil {
			schema = map[string]any{"type": "object"}
		}

		tool := model.Tool{
			Tool: mcp.Tool{
				Name:        tc.Name,
				Description: tc.Description,
				InputSchema: schema,
			},
			Namespace: tc.Namespace,
			Tags:      tc.Tags,
		}
		if err := idx.RegisterTool(tool, model.NewLocalBackend(tc.Namespace)); err != nil {
			return nil, fmt.Errorf("register tool %s: %w", tc.ID(), err)
		}
		if tc.Summary != "" || tc.Notes != "" {
			if err := docs.RegisterDoc(tc.ID(), tooldoc.DocEntry{Summary: tc.Summary, Notes: tc.Notes}); err != nil {
				return nil, fmt.Errorf("register doc %s: %w", tc.ID(), err)
			}
		}

		b, ok := locals[tc.Namespace]
		if !ok {
			b = local.New(tc.Namespace)
			locals[tc.Namespace] = b
			if err := reg.Register(b); err != nil {
				return nil, err
			}
		}
		response := tc.Response
		b.RegisterHandler(tc.Name, local.ToolDef{
			Name:        tc.Name,
			Description: tc.Description,
			InputSchema: schema,
			Tags:        tc.Tags,
			Handler: func(context.Context, map[string]any) (any, error) {
				return response, nil
			},
		})
	}

	return sandbox.New(sandbox.Config{
		Index:           idx,
		Docs:            docs,
		Backends:        backend.NewAggregator(reg, backend.WithDocs(docs)),
		DefaultTimeout:  cfg.Sandbox.Timeout,
		DefaultLanguage: cfg.Sandbox.Language,
		MaxToolCalls:    cfg.Sandbox.MaxToolCalls,
		MaxChainSteps:   cfg.Sandbox.MaxChainSteps,
		Flags:           cfg.Sandbox.Flags,
		Logger:          server.LogfAdapter{Logger: logger},
	})
}

// newHolder returns a watching holder when path names an existing file and
// a static holder over cfg otherwise.
func newHolder(path string, cfg *config.Config, logger zerolog.Logger) (*config.Holder, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return config.NewHolder(path, logger)
		}
	}
	return config.NewStaticHolder(cfg, logger), nil
}

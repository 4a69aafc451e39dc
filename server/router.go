package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// CatalogPath is the route of the catalog endpoint.
const CatalogPath = "/api/catalog"

// RouterConfig holds optional router components.
type RouterConfig struct {
	// Metrics enables request metrics and the metrics endpoint.
	Metrics *Metrics

	// MetricsPath defaults to "/metrics".
	MetricsPath string

	// MCPHandler is mounted at MCPPath when set.
	MCPHandler http.Handler

	// MCPPath defaults to "/mcp".
	MCPPath string
}

// NewRouter creates the HTTP router.
func NewRouter(srv *Server, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.MCPPath == "" {
		cfg.MCPPath = "/mcp"
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, CatalogPath, srv)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics.Handler())
	}
	if cfg.MCPHandler != nil {
		r.Handle(cfg.MCPPath, cfg.MCPHandler)
	}

	return r
}

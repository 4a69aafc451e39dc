package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonwraymond/toolscope/catalog"
	"github.com/rs/zerolog"
)

// ErrNoSource is returned when a Server is created without a Source.
var ErrNoSource = errors.New("server: source is required")

// internalErrorBody is the only body sent on failure.
var internalErrorBody = []byte(`{"error":"internal server error"}`)

// Server builds catalogs from a Source and serves them as JSON.
type Server struct {
	source  Source
	walker  atomic.Pointer[catalog.Walker]
	logger  zerolog.Logger
	metrics *Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records build timings and sizes on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithWalker sets the walker used to flatten namespaces. The default is a
// walker with a zero catalog.Config.
func WithWalker(w *catalog.Walker) Option {
	return func(s *Server) {
		if w != nil {
			s.walker.Store(w)
		}
	}
}

// New creates a Server over source.
func New(source Source, opts ...Option) (*Server, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	s := &Server{source: source, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.walker.Load() == nil {
		w, err := catalog.New(catalog.Config{})
		if err != nil {
			return nil, err
		}
		s.walker.Store(w)
	}
	return s, nil
}

// SetWalker swaps the walker used by subsequent requests, e.g. after a
// configuration reload.
func (s *Server) SetWalker(w *catalog.Walker) {
	if w != nil {
		s.walker.Store(w)
	}
}

// Catalog fetches the namespace from the source and flattens it.
func (s *Server) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	c, err := s.build(ctx)
	if s.metrics != nil {
		s.metrics.BuildDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.BuildErrors.Inc()
		} else {
			s.metrics.CatalogEntries.Set(float64(c.Len()))
		}
	}
	return c, err
}

func (s *Server) build(ctx context.Context) (*catalog.Catalog, error) {
	ns, err := s.source.Namespace(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.walker.Load().Walk(ns)
}

// CatalogJSON builds the catalog and encodes it.
func (s *Server) CatalogJSON(ctx context.Context) ([]byte, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(c)
}

// ServeHTTP writes the catalog as JSON. The body is encoded completely
// before anything is written, so a failure never leaks a partial catalog.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, err := s.CatalogJSON(r.Context())
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("catalog build failed")
		writeJSON(w, http.StatusInternalServerError, internalErrorBody)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

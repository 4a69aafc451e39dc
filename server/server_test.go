package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonwraymond/toolscope/catalog"
	"github.com/jonwraymond/toolscope/namespace"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNamespace() *namespace.Namespace {
	return namespace.New().
		Bind("max_int", 100).
		Set("frappe", namespace.Sub(namespace.New().
			Set("flags", namespace.Sub(namespace.New().Bind("in_test", true)))))
}

const testCatalogJSON = `{"max_int":{"type":"int","value":100,"is_callable":false},` +
	`"frappe.flags.in_test":{"type":"bool","value":true,"is_callable":false}}`

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestServer_ServeHTTP(t *testing.T) {
	srv, err := New(StaticSource(testNamespace()))
	require.NoError(t, err)

	rec := get(t, srv, CatalogPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, testCatalogJSON, rec.Body.String())
}

func TestServer_ServeHTTP_Empty(t *testing.T) {
	srv, err := New(StaticSource(namespace.New()))
	require.NoError(t, err)

	rec := get(t, srv, CatalogPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{}", rec.Body.String())
}

func TestServer_ServeHTTP_Failures(t *testing.T) {
	cyclic := namespace.New()
	cyclic.Set("self", namespace.Sub(cyclic))

	strict, err := catalog.New(catalog.Config{Strict: true})
	require.NoError(t, err)

	tests := []struct {
		name   string
		source Source
		opts   []Option
	}{
		{
			name: "source error",
			source: SourceFunc(func(context.Context) (*namespace.Namespace, error) {
				return nil, errors.New("globals unavailable")
			}),
		},
		{
			name:   "cycle",
			source: StaticSource(namespace.New().Bind("ok", 1).Set("loop", namespace.Sub(cyclic))),
		},
		{
			name:   "strict names",
			source: StaticSource(namespace.New().Bind("ok", 1).Bind("a.b", 2)),
			opts:   []Option{WithWalker(strict)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			opts := append([]Option{WithLogger(zerolog.New(&logs))}, tt.opts...)
			srv, err := New(tt.source, opts...)
			require.NoError(t, err)

			rec := get(t, srv, CatalogPath)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, `{"error":"internal server error"}`, rec.Body.String())
			assert.Contains(t, logs.String(), "catalog build failed")
		})
	}
}

func TestServer_CanceledRequest(t *testing.T) {
	srv, err := New(StaticSource(testNamespace()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = srv.Catalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServer_SetWalker(t *testing.T) {
	srv, err := New(StaticSource(namespace.New().Bind("a.b", 1)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(t, srv, CatalogPath).Code)

	strict, err := catalog.New(catalog.Config{Strict: true})
	require.NoError(t, err)
	srv.SetWalker(strict)
	assert.Equal(t, http.StatusInternalServerError, get(t, srv, CatalogPath).Code)

	srv.SetWalker(nil)
	assert.Equal(t, http.StatusInternalServerError, get(t, srv, CatalogPath).Code, "nil walker is ignored")
}

func TestServer_Metrics(t *testing.T) {
	m := NewMetrics()
	srv, err := New(StaticSource(testNamespace()), WithMetrics(m))
	require.NoError(t, err)

	_, err = srv.Catalog(context.Background())
	require.NoError(t, err)

	rec := get(t, m.Handler(), "/metrics")
	body := rec.Body.String()
	assert.Contains(t, body, "toolscope_catalog_entries 2")
	assert.Contains(t, body, "toolscope_catalog_build_duration_seconds_count 1")
	assert.Contains(t, body, "toolscope_catalog_build_errors_total 0")
}

func TestRouter(t *testing.T) {
	m := NewMetrics()
	srv, err := New(StaticSource(testNamespace()), WithMetrics(m))
	require.NoError(t, err)
	router := NewRouter(srv, zerolog.Nop(), RouterConfig{Metrics: m})

	rec := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, router, CatalogPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testCatalogJSON, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, CatalogPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `toolscope_requests_total{method="GET",route="/api/catalog",status="2xx"} 1`)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestRouter_WithoutOptionalRoutes(t *testing.T) {
	srv, err := New(StaticSource(testNamespace()))
	require.NoError(t, err)
	router := NewRouter(srv, zerolog.Nop(), RouterConfig{})

	assert.Equal(t, http.StatusNotFound, get(t, router, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, get(t, router, "/mcp").Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	srv, err := New(SourceFunc(func(context.Context) (*namespace.Namespace, error) {
		panic("boom")
	}))
	require.NoError(t, err)
	router := NewRouter(srv, zerolog.Nop(), RouterConfig{})

	rec := get(t, router, CatalogPath)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	logger = NewLogger("bogus", "console", &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogfAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := LogfAdapter{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	adapter.Logf("cataloged %d bindings", 3)
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "cataloged 3 bindings")

	var _ catalog.Logger = adapter
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	h := NewLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "hi")
	}))

	get(t, h, "/health")
	assert.Empty(t, buf.String())

	get(t, h, CatalogPath)
	out := buf.String()
	assert.True(t, strings.Contains(out, `"path":"/api/catalog"`), out)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"bytes":2`)
}

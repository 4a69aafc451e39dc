// Package server exposes the flattened global namespace over HTTP and MCP.
//
// GET /api/catalog returns the catalog as a single JSON object mapping
// dotted paths to descriptors. Any failure while building the catalog
// yields 500 with {"error":"internal server error"}; a partial catalog is
// never sent.
//
// The router also serves /health, Prometheus metrics and, when enabled, a
// streamable MCP endpoint whose describe_globals tool returns the same
// catalog.
package server

package server

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DescribeGlobalsTool is the name of the MCP tool that returns the catalog.
const DescribeGlobalsTool = "describe_globals"

type describeGlobalsInput struct{}

// NewMCPServer creates an MCP server exposing the catalog as the
// describe_globals tool. The tool result is the catalog JSON as text.
func NewMCPServer(name, version string, srv *Server) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        DescribeGlobalsTool,
		Title:       "Describe sandbox globals",
		Description: "Return every name reachable in the sandbox global namespace as a JSON object mapping dotted paths to descriptors.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ describeGlobalsInput) (*mcp.CallToolResult, any, error) {
		data, err := srv.CatalogJSON(ctx)
		if err != nil {
			srv.logger.Error().Err(err).Msg("describe_globals failed")
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "internal server error"}},
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil, nil
	})

	return server
}

// NewMCPHandler serves server over the streamable HTTP transport.
func NewMCPHandler(server *mcp.Server) *mcp.StreamableHTTPHandler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

// Command toolscope serves a JSON catalog of the sandbox global namespace.
//
// Usage:
//
//	toolscope serve -c toolscope.yaml   # HTTP API, metrics and MCP endpoint
//	toolscope dump --pretty             # print the catalog and exit
//	toolscope mcp                       # MCP server over stdio
//	toolscope validate                  # check the configuration
package main

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	Execute()
}

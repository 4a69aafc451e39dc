package main

import (
	"github.com/jonwraymond/toolscope/config"
	"github.com/jonwraymond/toolscope/server"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the describe_globals tool over MCP stdio",
	Long: `Run an MCP server on stdin/stdout exposing the describe_globals tool.

Logs are written to stderr so they never mix with the protocol stream.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	logger := server.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	a, err := newApp(config.NewStaticHolder(cfg, logger), logger, nil)
	if err != nil {
		return err
	}
	s := server.NewMCPServer(cfg.MCP.Name, version, a.server)
	return s.Run(cmd.Context(), &mcp.StdioTransport{})
}

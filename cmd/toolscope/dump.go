package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonwraymond/toolscope/config"
	"github.com/jonwraymond/toolscope/server"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the globals catalog as JSON",
	Long: `Build the sandbox globals once and print the catalog to stdout.

Examples:
  toolscope dump
  toolscope dump --pretty --config ./toolscope.yaml`,
	RunE: runDump,
}

var dumpPretty bool

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVar(&dumpPretty, "pretty", false, "indent the JSON output")
}

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	logger := server.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	a, err := newApp(config.NewStaticHolder(cfg, logger), logger, nil)
	if err != nil {
		return err
	}
	data, err := a.server.CatalogJSON(cmd.Context())
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	return writeCatalog(cmd.OutOrStdout(), data, dumpPretty)
}

func writeCatalog(w io.Writer, data []byte, pretty bool) error {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err := fmt.Fprintln(w, string(data))
	return err
}

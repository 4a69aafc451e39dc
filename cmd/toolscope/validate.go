package main

import (
	"fmt"
	"os"

	"github.com/jonwraymond/toolscope/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the toolscope configuration file.

Checks:
  - YAML syntax is valid
  - Values are in range
  - Declared tools register and the catalog builds

Examples:
  toolscope validate
  toolscope validate --config /etc/toolscope/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", cfgFile)

	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Fprintf(out, "  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Fprintf(out, "  %s Config file exists\n", checkMark)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "  %s Config valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config valid\n", checkMark)
	fmt.Fprintf(out, "  %s Listen address: %s\n", checkMark, cfg.Server.Addr())
	fmt.Fprintf(out, "  %s Tools declared: %d\n", checkMark, len(cfg.Tools))

	a, err := newApp(config.NewStaticHolder(cfg, zerolog.Nop()), zerolog.Nop(), nil)
	if err != nil {
		fmt.Fprintf(out, "  %s Sandbox environment\n", crossMark)
		return err
	}
	c, err := a.server.Catalog(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "  %s Catalog builds\n", crossMark)
		return fmt.Errorf("catalog error: %w", err)
	}
	fmt.Fprintf(out, "  %s Catalog builds (%d entries)\n", checkMark, c.Len())

	fmt.Fprintln(out, "\nConfiguration is valid.")
	return nil
}

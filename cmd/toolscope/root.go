package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolscope",
	Short: "Describe the sandbox global namespace as a flat JSON catalog",
	Long: `toolscope builds the global namespace a code sandbox exposes to
snippets (metatools, tool backends, builtins, config values and flags) and
flattens it into a catalog keyed by dotted path.

Quick start:
  toolscope serve      # Start the HTTP server
  toolscope dump       # Print the catalog

Configuration is read from --config when the file exists; otherwise
defaults and TOOLSCOPE_* environment variables are used.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "toolscope.yaml", "config file path")
}

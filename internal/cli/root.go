// Package cli wires the compdb commands: gen, render, watch, clean,
// version.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mvp-joe/compdb/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "compdb",
	Short: "Generate compile_commands.json from the build graph",
	Long: `compdb generates a compilation database (compile_commands.json) for the
current workspace so editors, language servers, and static analyzers can
understand exactly how each source file is compiled.

It normalizes the configured target selection, materializes an extraction
script bound to it, and runs that script against the build tool.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .compdb/config.yml in the workspace)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the workspace configuration, preferring an explicit
// --config file when one was given.
func loadConfig(root string) (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.LoadFromDir(root)
}

// initLogging configures the global logger; debug lines are gated behind
// --verbose.
func initLogging() {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

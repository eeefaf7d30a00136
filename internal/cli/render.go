package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/compdb/internal/workspace"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Materialize the extraction script without running it",
	Long: `Render performs the normalization and materialization steps of 'compdb gen'
and writes the extraction script, but never executes it. Useful for
inspecting exactly what a gen run would do, or for committing the script
so another environment can run it.

The script is a disposable, re-derivable artifact: re-rendering with the
same configuration produces byte-identical output.

Examples:
  # Write .compdb/extract.py bound to the configured targets
  compdb render

  # Render for a one-off selection
  compdb render --target //app:main
`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringArrayVarP(&genTargetFlags, "target", "t", nil, "Target label, or label=extra-args (repeatable)")
	renderCmd.Flags().StringArrayVar(&genExcludeFlags, "exclude", nil, "Glob pattern of target labels to skip (repeatable)")
	renderCmd.Flags().BoolVar(&genSkipHeaders, "skip-header-extraction", false, "Do not emit standalone entries for headers")
	renderCmd.Flags().BoolVar(&genReplaceOut, "replace-output-path", false, "Rewrite build-output paths to stable workspace paths")
	renderCmd.Flags().BoolVar(&genReplaceExt, "replace-external-path", false, "Rewrite external repository paths to local mirrors")
}

func runRender(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := workspace.FindRoot(wd)
	if err != nil {
		return err
	}

	_, scriptPath, err := generateScript(cmd, root)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Materialized %s\n", scriptPath)
	return nil
}

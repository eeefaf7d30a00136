package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mvp-joe/compdb/internal/config"
	"github.com/mvp-joe/compdb/internal/runner"
	"github.com/mvp-joe/compdb/internal/script"
	"github.com/mvp-joe/compdb/internal/workspace"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	genTargetFlags  []string
	genExcludeFlags []string
	genSkipHeaders  bool
	genReplaceOut   bool
	genReplaceExt   bool
	genDryRun       bool
)

// genCmd represents the gen command
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate compile_commands.json for this workspace",
	Long: `Gen runs the full pipeline: it normalizes the configured target
selection, materializes the extraction script, and executes it. The script
walks the build graph and writes compile_commands.json at the workspace
root, overwriting any prior version.

Targets come from --target flags, or from the 'targets' key in
.compdb/config.yml (a single label, a list, or a mapping from label to
extra build arguments). With neither, every target in the workspace is
selected.

Examples:
  # Everything in the workspace
  compdb gen

  # Two specific targets
  compdb gen --target //app:main --target //app:test

  # A target with extra build arguments
  compdb gen --target '//app:main=--config=ci'

  # Materialize the script but skip execution
  compdb gen --dry-run
`,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringArrayVarP(&genTargetFlags, "target", "t", nil, "Target label, or label=extra-args (repeatable)")
	genCmd.Flags().StringArrayVar(&genExcludeFlags, "exclude", nil, "Glob pattern of target labels to skip (repeatable)")
	genCmd.Flags().BoolVar(&genSkipHeaders, "skip-header-extraction", false, "Do not emit standalone entries for headers")
	genCmd.Flags().BoolVar(&genReplaceOut, "replace-output-path", false, "Rewrite build-output paths to stable workspace paths")
	genCmd.Flags().BoolVar(&genReplaceExt, "replace-external-path", false, "Rewrite external repository paths to local mirrors")
	genCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Materialize the script without executing it")
}

func runGen(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := workspace.FindRoot(wd)
	if err != nil {
		return err
	}

	cfg, scriptPath, err := generateScript(cmd, root)
	if err != nil {
		return err
	}
	if genDryRun {
		fmt.Printf("✓ Materialized %s (dry run, not executed)\n", scriptPath)
		return nil
	}

	if err := executeScript(cmd, cfg, root, scriptPath); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", filepath.Join(root, cfg.Output.DatabasePath))
	return nil
}

// generateScript runs the pure half of the pipeline and writes the
// materialized script under the workspace root. Shared with watch.
func generateScript(cmd *cobra.Command, root string) (*config.Config, string, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, "", err
	}

	flags := genFlagsFromCommand(cmd)
	scriptCfg, err := buildScriptConfig(cfg, flags)
	if err != nil {
		return nil, "", err
	}

	rendered, err := script.Materialize(scriptCfg)
	if err != nil {
		return nil, "", err
	}

	scriptPath := filepath.Join(root, cfg.Output.ScriptPath)
	if err := script.Write(afero.NewOsFs(), scriptPath, rendered); err != nil {
		return nil, "", err
	}
	log.Debug("materialized extraction script", "path", scriptPath, "targets", scriptCfg.Targets.Len())
	return cfg, scriptPath, nil
}

// genFlagsFromCommand snapshots the gen flag set, recording which boolean
// switches were explicitly set so unset flags do not clobber the config
// file.
func genFlagsFromCommand(cmd *cobra.Command) genFlags {
	return genFlags{
		targets:              genTargetFlags,
		exclude:              genExcludeFlags,
		skipHeaderExtraction: genSkipHeaders,
		replaceOutputPath:    genReplaceOut,
		replaceExternalPath:  genReplaceExt,
		skipHeaderSet:        cmd.Flags().Changed("skip-header-extraction"),
		replaceOutputSet:     cmd.Flags().Changed("replace-output-path"),
		replaceExternalSet:   cmd.Flags().Changed("replace-external-path"),
	}
}

// executeScript runs the materialized script. With --verbose the script's
// output streams through directly; otherwise it is buffered behind a
// spinner and replayed only on failure.
func executeScript(cmd *cobra.Command, cfg *config.Config, root, scriptPath string) error {
	opts := runner.Options{
		Interpreter:   cfg.Output.Interpreter,
		ScriptPath:    scriptPath,
		WorkspaceRoot: root,
	}

	if verbose {
		opts.Stdout = os.Stdout
		opts.Stderr = os.Stderr
		return runner.Run(cmd.Context(), opts)
	}

	var output bytes.Buffer
	opts.Stdout = &output
	opts.Stderr = &output

	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Extracting compile commands"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				spinner.Add(1)
			}
		}
	}()

	err := runner.Run(cmd.Context(), opts)
	close(done)
	spinner.Finish()
	fmt.Fprintln(os.Stderr)

	if err != nil {
		// Replay the captured output so extraction failures are not masked.
		os.Stderr.Write(output.Bytes())
		return err
	}
	return nil
}

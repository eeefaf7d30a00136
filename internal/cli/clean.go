package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/compdb/internal/workspace"
	"github.com/spf13/cobra"
)

var cleanQuietFlag bool

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the generated script and compilation database",
	Long: `Clean removes the materialized extraction script and
compile_commands.json from the workspace root. Both are disposable,
re-derivable artifacts; the next 'compdb gen' recreates them.

The configuration file (.compdb/config.yml) is preserved.

Examples:
  # Remove generated artifacts
  compdb clean

  # Clean with minimal output
  compdb clean --quiet
`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanQuietFlag, "quiet", "q", false, "Suppress output messages")
}

func runClean(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := workspace.FindRoot(wd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	removed := 0
	for _, rel := range []string{cfg.Output.ScriptPath, cfg.Output.DatabasePath} {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed++
		if !cleanQuietFlag {
			fmt.Printf("✓ Removed %s\n", path)
		}
	}

	if !cleanQuietFlag {
		if removed == 0 {
			fmt.Println("Nothing to clean")
		} else {
			fmt.Println("Next 'compdb gen' will regenerate both artifacts")
		}
	}
	return nil
}

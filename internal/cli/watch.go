package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/mvp-joe/compdb/internal/workspace"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate compile_commands.json when build files change",
	Long: `Watch runs 'compdb gen' once, then watches the workspace for changes to
build definition files (BUILD, BUILD.bazel, *.bzl, WORKSPACE, MODULE.bazel)
and to .compdb/config.yml, regenerating the compilation database after each
change. Edits are debounced so a burst of saves triggers one regeneration.

Stop with Ctrl-C.
`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringArrayVarP(&genTargetFlags, "target", "t", nil, "Target label, or label=extra-args (repeatable)")
	watchCmd.Flags().StringArrayVar(&genExcludeFlags, "exclude", nil, "Glob pattern of target labels to skip (repeatable)")
	watchCmd.Flags().BoolVar(&genSkipHeaders, "skip-header-extraction", false, "Do not emit standalone entries for headers")
	watchCmd.Flags().BoolVar(&genReplaceOut, "replace-output-path", false, "Rewrite build-output paths to stable workspace paths")
	watchCmd.Flags().BoolVar(&genReplaceExt, "replace-external-path", false, "Rewrite external repository paths to local mirrors")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Delay before regenerating after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := workspace.FindRoot(wd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial generation before settling into the event loop.
	if err := regenerate(cmd, root); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addDirectoriesRecursively(watcher, root); err != nil {
		return err
	}

	fmt.Println("Watching for build file changes (Ctrl-C to stop)...")
	return watchLoop(ctx, cmd, root, watcher)
}

// watchLoop debounces relevant events and regenerates once per burst.
func watchLoop(ctx context.Context, cmd *cobra.Command, root string, watcher *fsnotify.Watcher) error {
	var debounceTimer *time.Timer
	regen := make(chan struct{}, 1)

	for {
		var timerCh <-chan time.Time
		if debounceTimer != nil {
			timerCh = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Println("\nStopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isBuildFile(event.Name) {
				continue
			}
			// New directories may hold BUILD files of their own.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
					continue
				}
			}
			log.Debug("build file changed", "file", event.Name, "op", event.Op.String())
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(watchDebounce)
			} else {
				debounceTimer.Reset(watchDebounce)
			}

		case <-timerCh:
			debounceTimer = nil
			select {
			case regen <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-regen:
			if err := regenerate(cmd, root); err != nil {
				// Keep watching; a broken edit should not kill the loop.
				log.Error("regeneration failed", "err", err)
			}
		}
	}
}

// regenerate runs the full gen pipeline once.
func regenerate(cmd *cobra.Command, root string) error {
	cfg, scriptPath, err := generateScript(cmd, root)
	if err != nil {
		return err
	}
	if err := executeScript(cmd, cfg, root, scriptPath); err != nil {
		return err
	}
	fmt.Printf("✓ Updated %s\n", filepath.Join(root, cfg.Output.DatabasePath))
	return nil
}

// isBuildFile reports whether a path is a build definition file worth
// regenerating for. Directories pass so creations can extend the watch set.
func isBuildFile(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	base := filepath.Base(path)
	switch base {
	case "BUILD", "BUILD.bazel", "WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel", "config.yml", "config.yaml":
		return true
	}
	return strings.HasSuffix(base, ".bzl")
}

// addDirectoriesRecursively registers the workspace tree with the watcher,
// skipping VCS metadata and build tool output links.
func addDirectoriesRecursively(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || strings.HasPrefix(name, "bazel-") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			log.Debug("cannot watch directory", "dir", path, "err", err)
		}
		return nil
	})
}

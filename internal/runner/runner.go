// Package runner executes the materialized extraction script. The script
// is a black box: everything it does (graph walking, command extraction,
// writing compile_commands.json) is its own contract, and its failures are
// surfaced verbatim rather than interpreted here.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/kluctl/go-embed-python/python"
)

// Options configure one script execution.
type Options struct {
	// Interpreter, when set, names a system command used to run the
	// script, e.g. "python3". When empty the embedded Python runtime runs
	// it, so extraction works without a local Python installation.
	Interpreter string

	// ScriptPath is the materialized script, absolute or root-relative.
	ScriptPath string

	// WorkspaceRoot becomes the working directory; the script resolves the
	// database location against it.
	WorkspaceRoot string

	// Stdout and Stderr receive the script's output streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the script and blocks until it exits. Context cancellation
// kills the process. A non-zero exit comes back wrapped with the script
// path so the caller can tell extraction failures from compdb's own.
func Run(ctx context.Context, opts Options) error {
	cmd, err := interpreterCmd(opts)
	if err != nil {
		return err
	}
	cmd.Dir = opts.WorkspaceRoot
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	log.Debug("running extraction script",
		"interpreter", cmd.Path,
		"script", opts.ScriptPath,
		"dir", opts.WorkspaceRoot)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("extraction script %s failed: %w", opts.ScriptPath, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return fmt.Errorf("extraction canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("extraction script %s failed: %w", opts.ScriptPath, err)
		}
		return nil
	}
}

// interpreterCmd builds the script command: a configured system
// interpreter when one is named, otherwise the embedded Python runtime.
func interpreterCmd(opts Options) (*exec.Cmd, error) {
	if opts.Interpreter != "" {
		return exec.Command(opts.Interpreter, opts.ScriptPath), nil
	}
	ep, err := embeddedPython()
	if err != nil {
		return nil, err
	}
	return ep.PythonCmd(opts.ScriptPath)
}

// embeddedPython unpacks (once) and returns the bundled Python runtime.
// The directory is persistent so repeated runs reuse the extraction; the
// library suffixes it with a content hash, so runtime upgrades land in a
// fresh directory instead of clobbering a live one.
func embeddedPython() (*python.EmbeddedPython, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	runtimeDir := filepath.Join(home, ".compdb", "runtime")

	ep, err := python.NewEmbeddedPythonWithTmpDir(runtimeDir, true)
	if err != nil {
		return nil, fmt.Errorf("failed to provision embedded python: %w", err)
	}
	return ep, nil
}

// Package workspace locates the build workspace root that generated
// artifacts are anchored to.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no workspace marker was found above the start
// directory.
var ErrNotFound = errors.New("no workspace root found")

// markerFiles identify a workspace root, checked in order at each level.
var markerFiles = []string{
	"MODULE.bazel",
	"WORKSPACE.bazel",
	"WORKSPACE",
}

// FindRoot walks up from startDir looking for a workspace marker file and
// returns the directory containing it. If no marker exists, the git
// worktree root is used as a fallback so the tool still works in plain
// repositories.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		for _, marker := range markerFiles {
			info, err := os.Stat(filepath.Join(dir, marker))
			if err == nil && !info.IsDir() {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if root := gitWorktreeRoot(startDir); root != "" {
		return root, nil
	}

	return "", fmt.Errorf("%w: no %s above %s and not inside a git worktree",
		ErrNotFound, strings.Join(markerFiles, "/"), startDir)
}

// gitWorktreeRoot returns the git worktree root, or "" outside a repository.
func gitWorktreeRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

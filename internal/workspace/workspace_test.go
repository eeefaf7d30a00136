package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Workspace Discovery:
// - FindRoot returns the directory holding MODULE.bazel
// - FindRoot returns the directory holding WORKSPACE
// - FindRoot walks up from nested directories
// - FindRoot prefers the nearest marker when several exist
// - FindRoot fails outside any workspace or git worktree

func TestFindRoot_FindsModuleBazel(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "MODULE.bazel"), []byte("module(name = \"demo\")\n"), 0o644))

	root, err := FindRoot(tempDir)
	require.NoError(t, err)
	assert.Equal(t, tempDir, root)
}

func TestFindRoot_FindsWorkspaceFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "WORKSPACE"), nil, 0o644))

	root, err := FindRoot(tempDir)
	require.NoError(t, err)
	assert.Equal(t, tempDir, root)
}

func TestFindRoot_WalksUpFromNestedDirectory(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "WORKSPACE.bazel"), nil, 0o644))

	nested := filepath.Join(tempDir, "src", "lib", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, tempDir, root)
}

func TestFindRoot_PrefersNearestMarker(t *testing.T) {
	outer := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outer, "WORKSPACE"), nil, 0o644))

	inner := filepath.Join(outer, "nested")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "MODULE.bazel"), nil, 0o644))

	root, err := FindRoot(inner)
	require.NoError(t, err)
	assert.Equal(t, inner, root)
}

func TestFindRoot_FailsOutsideAnyWorkspace(t *testing.T) {
	// t.TempDir() lives outside any git worktree on CI and dev machines.
	tempDir := t.TempDir()

	_, err := FindRoot(tempDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

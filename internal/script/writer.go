package script

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Write stores a materialized script at path, creating parent directories
// as needed. The script is marked executable. Writing is the only I/O in
// this package; materialization itself never touches the filesystem.
func Write(fs afero.Fs, path string, rendered []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create script directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(fs, path, rendered, 0o755); err != nil {
		return fmt.Errorf("failed to write script %s: %w", path, err)
	}
	return nil
}

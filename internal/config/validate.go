package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/compdb/internal/target"
)

var (
	// ErrInvalidTargets indicates a targets value of an unrecognized shape
	ErrInvalidTargets = errors.New("invalid targets value")

	// ErrInvalidExclude indicates a malformed exclude pattern
	ErrInvalidExclude = errors.New("invalid exclude_targets value")

	// ErrEmptyScriptPath indicates a missing script output path
	ErrEmptyScriptPath = errors.New("empty output.script_path")

	// ErrEmptyDatabasePath indicates a missing database output path
	ErrEmptyDatabasePath = errors.New("empty output.database_path")
)

// Validate checks that the configuration is valid and complete. Shape
// errors are fatal; nothing is coerced or defaulted here.
func Validate(cfg *Config) error {
	var errs []error

	// The targets value must decode into one of the three accepted shapes.
	if _, err := target.DecodeSpec(cfg.Targets); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidTargets, err))
	}

	// Exclude patterns must compile; probing against an empty map surfaces
	// pattern errors without touching real targets.
	if _, err := target.NewMap().Exclude(cfg.ExcludeTargets); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidExclude, err))
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.ScriptPath) == "" {
		errs = append(errs, fmt.Errorf("%w: script path is required", ErrEmptyScriptPath))
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		errs = append(errs, fmt.Errorf("%w: database path is required", ErrEmptyDatabasePath))
	}
	// An empty interpreter is valid: it selects the embedded runtime.

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

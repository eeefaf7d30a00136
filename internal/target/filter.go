package target

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
	"github.com/google/shlex"
)

var (
	// ErrBadExcludePattern indicates an exclude pattern that does not compile.
	ErrBadExcludePattern = errors.New("invalid exclude pattern")

	// ErrBadArguments indicates an extra-argument string that cannot be
	// split into shell words.
	ErrBadArguments = errors.New("invalid extra arguments")
)

// Exclude returns a new map without the entries whose identifier matches
// any of the given glob patterns. An empty pattern list returns the
// receiver unchanged.
func (m *Map) Exclude(patterns []string) (*Map, error) {
	if len(patterns) == 0 {
		return m, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadExcludePattern, p, err)
		}
		globs = append(globs, g)
	}

	filtered := NewMap()
	for _, pair := range m.Pairs() {
		if matchesAny(globs, pair.Identifier) {
			continue
		}
		filtered.add(pair.Identifier, pair.Args)
	}
	return filtered, nil
}

func matchesAny(globs []glob.Glob, identifier string) bool {
	for _, g := range globs {
		if g.Match(identifier) {
			return true
		}
	}
	return false
}

// ValidateArgs checks that every extra-argument string in the map splits
// cleanly into shell words, so malformed quoting fails here instead of
// inside the generated script.
func ValidateArgs(m *Map) error {
	for _, pair := range m.Pairs() {
		if pair.Args == "" {
			continue
		}
		if _, err := shlex.Split(pair.Args); err != nil {
			return fmt.Errorf("%w: target %q: %v", ErrBadArguments, pair.Identifier, err)
		}
	}
	return nil
}

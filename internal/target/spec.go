// Package target turns flexible user-supplied target specifications into
// the single canonical mapping consumed by script materialization.
//
// Callers describe what to extract compile commands for in one of three
// shapes: a single target label, a list of labels, or a mapping from label
// to extra build arguments. DecodeSpec converts the dynamically typed
// configuration value into a closed Spec sum type; Normalize collapses all
// three shapes into a Map.
package target

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidSpec indicates a targets value of an unrecognized shape.
	ErrInvalidSpec = errors.New("invalid target specification")
)

// specKind discriminates the accepted specification shapes.
type specKind int

const (
	kindSingle specKind = iota
	kindSequence
	kindMapping
)

// Spec is the closed set of accepted target-specification shapes. A nil
// *Spec means the caller supplied no specification at all and wants the
// default workspace scope.
type Spec struct {
	kind     specKind
	single   string
	sequence []string
	mapping  []Pair
}

// Single builds a specification naming one target.
func Single(identifier string) *Spec {
	return &Spec{kind: kindSingle, single: identifier}
}

// Sequence builds a specification naming several targets with default
// arguments.
func Sequence(identifiers ...string) *Spec {
	return &Spec{kind: kindSequence, sequence: identifiers}
}

// Mapping builds a specification carrying per-target extra arguments. Pair
// order is preserved through normalization.
func Mapping(pairs ...Pair) *Spec {
	return &Spec{kind: kindMapping, mapping: pairs}
}

// DecodeSpec builds a Spec from a dynamically typed configuration value as
// produced by YAML/viper decoding:
//
//   - nil            -> nil Spec (default scope)
//   - string         -> Single
//   - []string/[]any -> Sequence (elements must be strings)
//   - map shapes     -> Mapping (values must be strings)
//
// Dynamic maps carry no order, so their entries are sorted by identifier to
// keep downstream output stable across runs. Any other value is a caller
// error reported as ErrInvalidSpec; nothing is coerced.
//
// This is the only place runtime type inspection happens. Everything after
// DecodeSpec works with the closed Spec type.
func DecodeSpec(value any) (*Spec, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return Single(v), nil
	case []string:
		return Sequence(v...), nil
	case []any:
		ids := make([]string, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list element %d is %T, want string", ErrInvalidSpec, i, elem)
			}
			ids = append(ids, s)
		}
		return Sequence(ids...), nil
	case map[string]string:
		return Mapping(sortedPairs(v)...), nil
	case map[string]any:
		pairs := make(map[string]string, len(v))
		for id, raw := range v {
			args, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: arguments for %q are %T, want string", ErrInvalidSpec, id, raw)
			}
			pairs[id] = args
		}
		return Mapping(sortedPairs(pairs)...), nil
	default:
		return nil, fmt.Errorf("%w: got %T, want string, list of strings, or map of string to string", ErrInvalidSpec, value)
	}
}

// sortedPairs converts an unordered Go map into pairs sorted by identifier.
func sortedPairs(m map[string]string) []Pair {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	pairs := make([]Pair, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, Pair{Identifier: id, Args: m[id]})
	}
	return pairs
}

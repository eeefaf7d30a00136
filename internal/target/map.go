package target

// DefaultScope is the sentinel identifier meaning "every target reachable
// from the workspace root". It is expanded by the build tool at extraction
// time, never by compdb itself.
const DefaultScope = "@//..."

// Pair is a single (identifier, extra-arguments) entry of a canonical map.
type Pair struct {
	Identifier string
	Args       string
}

// Map is the canonical target mapping: every distinct identifier appears
// exactly once, in first-seen order, mapped to an extra-argument string
// (possibly empty). It is constructed once per invocation by Normalize and
// treated as immutable afterwards.
type Map struct {
	keys []string
	args map[string]string
}

// NewMap creates an empty canonical map.
func NewMap() *Map {
	return &Map{
		args: make(map[string]string),
	}
}

// DefaultMap returns the single-entry map selecting every target in the
// invoking workspace.
func DefaultMap() *Map {
	m := NewMap()
	m.add(DefaultScope, "")
	return m
}

// add inserts an identifier with its argument string. The first occurrence
// wins; repeated identifiers are ignored and reported via the return value.
func (m *Map) add(identifier, args string) bool {
	if _, exists := m.args[identifier]; exists {
		return false
	}
	m.keys = append(m.keys, identifier)
	m.args[identifier] = args
	return true
}

// Args returns the extra-argument string for an identifier.
func (m *Map) Args(identifier string) (string, bool) {
	args, ok := m.args[identifier]
	return args, ok
}

// Contains reports whether the identifier is present.
func (m *Map) Contains(identifier string) bool {
	_, ok := m.args[identifier]
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Identifiers returns the identifiers in first-seen order. The returned
// slice is a copy; mutating it does not affect the map.
func (m *Map) Identifiers() []string {
	ids := make([]string, len(m.keys))
	copy(ids, m.keys)
	return ids
}

// Pairs returns all entries in first-seen order.
func (m *Map) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.keys))
	for _, id := range m.keys {
		pairs = append(pairs, Pair{Identifier: id, Args: m.args[id]})
	}
	return pairs
}

// IsDefaultScope reports whether the map is exactly the default "everything
// in workspace" selection.
func (m *Map) IsDefaultScope() bool {
	return len(m.keys) == 1 && m.keys[0] == DefaultScope
}

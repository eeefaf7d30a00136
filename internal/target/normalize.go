package target

import (
	"github.com/charmbracelet/log"
)

// Normalize collapses a specification into the canonical Map:
//
//   - nil spec  -> single DefaultScope entry with empty arguments
//   - Single    -> one entry with empty arguments
//   - Sequence  -> one entry per identifier in first-seen order; repeated
//     identifiers collapse silently to the first occurrence
//   - Mapping   -> entries carried over unchanged, order preserved
//
// Duplicate identifiers in sequence form are tolerated rather than
// rejected; a debug log line records each collapse so the leniency stays
// observable. Normalize is a pure function of its input aside from that
// logging.
func Normalize(spec *Spec) *Map {
	if spec == nil {
		return DefaultMap()
	}

	m := NewMap()
	switch spec.kind {
	case kindSingle:
		m.add(spec.single, "")
	case kindSequence:
		for _, id := range spec.sequence {
			if !m.add(id, "") {
				log.Debug("collapsing duplicate target", "target", id)
			}
		}
	case kindMapping:
		for _, p := range spec.mapping {
			if !m.add(p.Identifier, p.Args) {
				log.Debug("collapsing duplicate target", "target", p.Identifier)
			}
		}
	}
	return m
}

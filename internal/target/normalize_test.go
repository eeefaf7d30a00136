package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Target Normalization:
// - Normalize(nil) returns the single default-scope entry
// - Normalize(Single) and Normalize(Sequence of one) produce the same map
// - Sequence preserves first-seen order
// - Duplicate identifiers in a sequence collapse without error
// - Mapping passes through unchanged, keys and argument strings intact
// - Duplicate identifiers never appear in any canonical map
// - DecodeSpec accepts string, []string, []any, map[string]string, map[string]any
// - DecodeSpec sorts dynamic map entries by identifier
// - DecodeSpec rejects numbers, booleans, and lists with non-string elements

func TestNormalize_AbsentSpecSelectsDefaultScope(t *testing.T) {
	m := Normalize(nil)

	require.Equal(t, 1, m.Len())
	assert.Equal(t, []string{DefaultScope}, m.Identifiers())

	args, ok := m.Args(DefaultScope)
	require.True(t, ok)
	assert.Equal(t, "", args)
	assert.True(t, m.IsDefaultScope())
}

func TestNormalize_SingleEquivalentToOneElementSequence(t *testing.T) {
	fromSingle := Normalize(Single("//:bin"))
	fromSequence := Normalize(Sequence("//:bin"))

	assert.Equal(t, fromSingle.Pairs(), fromSequence.Pairs())
	assert.Equal(t, []Pair{{Identifier: "//:bin", Args: ""}}, fromSingle.Pairs())
}

func TestNormalize_SequencePreservesFirstSeenOrder(t *testing.T) {
	m := Normalize(Sequence("//pkg:z", "//pkg:a", "//pkg:m"))

	assert.Equal(t, []string{"//pkg:z", "//pkg:a", "//pkg:m"}, m.Identifiers())
}

func TestNormalize_DuplicateSequenceEntriesCollapse(t *testing.T) {
	// Scenario from the configuration surface: ["//:a", "//:b", "//:a"]
	// yields exactly two entries, no error.
	m := Normalize(Sequence("//:a", "//:b", "//:a"))

	require.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"//:a", "//:b"}, m.Identifiers())

	for _, pair := range m.Pairs() {
		assert.Equal(t, "", pair.Args)
	}
}

func TestNormalize_MappingPassesThroughUnchanged(t *testing.T) {
	m := Normalize(Mapping(
		Pair{Identifier: "a", Args: "-x"},
		Pair{Identifier: "b", Args: ""},
	))

	require.Equal(t, 2, m.Len())
	args, ok := m.Args("a")
	require.True(t, ok)
	assert.Equal(t, "-x", args)

	args, ok = m.Args("b")
	require.True(t, ok)
	assert.Equal(t, "", args)
	assert.False(t, m.IsDefaultScope())
}

func TestNormalize_NoDuplicateIdentifiersForAnyShape(t *testing.T) {
	specs := map[string]*Spec{
		"single":           Single("//:a"),
		"sequence":         Sequence("//:a", "//:a", "//:b"),
		"mapping":          Mapping(Pair{Identifier: "//:a", Args: "-x"}, Pair{Identifier: "//:a", Args: "-y"}),
		"absent (default)": nil,
	}

	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			m := Normalize(spec)
			seen := make(map[string]bool)
			for _, id := range m.Identifiers() {
				assert.False(t, seen[id], "identifier %q appears twice", id)
				seen[id] = true
			}
		})
	}
}

func TestDecodeSpec_AcceptsAllThreeShapes(t *testing.T) {
	// string shape
	spec, err := DecodeSpec("//:bin")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Identifier: "//:bin", Args: ""}}, Normalize(spec).Pairs())

	// list shapes, both as []string and as YAML-decoded []any
	spec, err = DecodeSpec([]string{"//:a", "//:b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"//:a", "//:b"}, Normalize(spec).Identifiers())

	spec, err = DecodeSpec([]any{"//:a", "//:b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"//:a", "//:b"}, Normalize(spec).Identifiers())

	// map shape carries argument strings through
	spec, err = DecodeSpec(map[string]any{"//:bin": "--flag"})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Identifier: "//:bin", Args: "--flag"}}, Normalize(spec).Pairs())
}

func TestDecodeSpec_NilMeansAbsent(t *testing.T) {
	spec, err := DecodeSpec(nil)
	require.NoError(t, err)
	assert.Nil(t, spec)
	assert.True(t, Normalize(spec).IsDefaultScope())
}

func TestDecodeSpec_SortsDynamicMapEntries(t *testing.T) {
	// Go maps carry no order; decoded mapping entries must come out sorted
	// so output stays stable across runs.
	spec, err := DecodeSpec(map[string]string{
		"//z:z": "-z",
		"//a:a": "-a",
		"//m:m": "-m",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"//a:a", "//m:m", "//z:z"}, Normalize(spec).Identifiers())
}

func TestDecodeSpec_RejectsUnrecognizedShapes(t *testing.T) {
	cases := map[string]any{
		"number":          42,
		"boolean":         true,
		"float":           1.5,
		"list of numbers": []any{1, 2},
		"map with non-string values": map[string]any{
			"//:bin": 7,
		},
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSpec(value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

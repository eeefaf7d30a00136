package script

import (
	"strings"
	"testing"

	"github.com/mvp-joe/compdb/internal/target"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Script Materialization:
// - Materialize is deterministic: two renders of one config are byte-identical
// - Output embeds every (identifier, args) pair as a literal tuple
// - Output embeds a Python boolean literal per switch, matching the config
// - Scenario: one mapping entry with a flag, all switches false
// - Scenario: default scope with replace_output_path enabled
// - Render rejects templates missing a required slot
// - Render rejects empty target maps
// - Write stores the script with parent directories created

func TestMaterialize_IsDeterministic(t *testing.T) {
	cfg := Config{
		Targets:              target.Normalize(target.Sequence("//:a", "//:b")),
		SkipHeaderExtraction: true,
	}

	first, err := Materialize(cfg)
	require.NoError(t, err)
	second, err := Materialize(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMaterialize_EmbedsTargetPairsAndSwitches(t *testing.T) {
	// Scenario: targets = {"//:bin": "--flag"}, all switches false.
	cfg := Config{
		Targets: target.Normalize(target.Mapping(
			target.Pair{Identifier: "//:bin", Args: "--flag"},
		)),
	}

	out, err := Materialize(cfg)
	require.NoError(t, err)
	rendered := string(out)

	assert.Contains(t, rendered, `("//:bin", "--flag"),`)
	assert.Equal(t, 1, strings.Count(rendered, `("//:bin"`), "pair must appear exactly once")

	assert.Contains(t, rendered, "_SKIP_HEADER_EXTRACTION = False")
	assert.Contains(t, rendered, "_REPLACE_OUTPUT_PATH = False")
	assert.Contains(t, rendered, "_REPLACE_EXTERNAL_PATH = False")
	assert.NotContains(t, rendered, "{{", "no unexpanded template markers may survive")
}

func TestMaterialize_DefaultScopeWithReplaceOutputPath(t *testing.T) {
	// Scenario: targets omitted, replace_output_path = true.
	cfg := Config{
		Targets:           target.Normalize(nil),
		ReplaceOutputPath: true,
	}

	out, err := Materialize(cfg)
	require.NoError(t, err)
	rendered := string(out)

	assert.Contains(t, rendered, `("@//...", ""),`)
	assert.Contains(t, rendered, "_REPLACE_OUTPUT_PATH = True")
	assert.Contains(t, rendered, "_SKIP_HEADER_EXTRACTION = False")
	assert.Contains(t, rendered, "_REPLACE_EXTERNAL_PATH = False")
}

func TestMaterialize_PreservesMapOrder(t *testing.T) {
	cfg := Config{
		Targets: target.Normalize(target.Sequence("//z:z", "//a:a")),
	}

	out, err := Materialize(cfg)
	require.NoError(t, err)
	rendered := string(out)

	assert.Less(t, strings.Index(rendered, `"//z:z"`), strings.Index(rendered, `"//a:a"`))
}

func TestRender_RejectsTemplateMissingSlot(t *testing.T) {
	cfg := Config{Targets: target.Normalize(nil)}

	// A template that dropped the ReplaceExternalPath slot must fail, not
	// render a script silently missing the switch.
	src := `
pairs = [{{ .TargetPairs }}]
skip = {{ .SkipHeaderExtraction }}
out = {{ .ReplaceOutputPath }}
`
	_, err := Render(cfg, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateIntegrity)
	assert.Contains(t, err.Error(), "ReplaceExternalPath")
}

func TestRender_RejectsEmptyTargetMap(t *testing.T) {
	_, err := Render(Config{Targets: target.NewMap()}, extractTemplate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTargets)

	_, err = Render(Config{}, extractTemplate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTargets)
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Write(fs, "/ws/.compdb/extract.py", []byte("#!/usr/bin/env python3\n"))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/ws/.compdb/extract.py")
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env python3\n", string(data))
}

// Package script renders the extraction script that produces
// compile_commands.json.
//
// The script body lives in an embedded template. Materialization
// substitutes the canonical target map and the generation switches into
// named template slots; the extraction logic itself (build-graph walking,
// header resolution, JSON serialization) belongs to the script and is
// never inspected here.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	_ "embed"

	"github.com/Masterminds/sprig/v3"
	"github.com/mvp-joe/compdb/internal/target"
)

//go:embed assets/extract.py.tmpl
var extractTemplate string

var (
	// ErrTemplateIntegrity indicates the template and the materializer have
	// drifted apart: a required slot is missing from the template source.
	// This is an internal packaging fault, not a user error.
	ErrTemplateIntegrity = errors.New("template integrity")

	// ErrEmptyTargets indicates a config whose canonical target map has no
	// entries, which would render a script that extracts nothing.
	ErrEmptyTargets = errors.New("empty target map")
)

// requiredSlots are the template slot names every extractor template must
// reference. Render refuses templates missing any of them rather than
// producing a script silently missing a configured option.
var requiredSlots = []string{
	"TargetPairs",
	"SkipHeaderExtraction",
	"ReplaceOutputPath",
	"ReplaceExternalPath",
}

// Config parametrizes one materialization. The switches are passed through
// to the script unmodified; every combination is valid.
type Config struct {
	Targets              *target.Map
	SkipHeaderExtraction bool
	ReplaceOutputPath    bool
	ReplaceExternalPath  bool
}

// templateData is the typed slot set handed to the template. Booleans are
// pre-rendered as Python literals so the template stays a plain
// substitution.
type templateData struct {
	TargetPairs          string
	SkipHeaderExtraction string
	ReplaceOutputPath    string
	ReplaceExternalPath  string
}

// Materialize renders the embedded extractor template with the given
// config. The result is deterministic: identical configs yield
// byte-identical scripts.
func Materialize(cfg Config) ([]byte, error) {
	return Render(cfg, extractTemplate)
}

// Render materializes cfg against an explicit template source. Exposed
// separately so template/materializer drift is testable; production code
// goes through Materialize.
func Render(cfg Config, templateSrc string) ([]byte, error) {
	if cfg.Targets == nil || cfg.Targets.Len() == 0 {
		return nil, ErrEmptyTargets
	}
	if err := verifyIntegrity(templateSrc); err != nil {
		return nil, err
	}

	tmpl, err := template.New("extract").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(templateSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateIntegrity, err)
	}

	data := templateData{
		TargetPairs:          renderPairs(cfg.Targets),
		SkipHeaderExtraction: pyBool(cfg.SkipHeaderExtraction),
		ReplaceOutputPath:    pyBool(cfg.ReplaceOutputPath),
		ReplaceExternalPath:  pyBool(cfg.ReplaceExternalPath),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateIntegrity, err)
	}
	return buf.Bytes(), nil
}

// verifyIntegrity checks that every required slot is referenced somewhere
// in the template source. text/template happily renders a template that
// ignores a field, which is exactly the silent drift this guards against.
func verifyIntegrity(templateSrc string) error {
	for _, slot := range requiredSlots {
		if !strings.Contains(templateSrc, "."+slot) {
			return fmt.Errorf("%w: template is missing slot %q", ErrTemplateIntegrity, slot)
		}
	}
	return nil
}

// renderPairs formats the canonical map as Python tuple literals, one pair
// per line, in map order.
func renderPairs(m *target.Map) string {
	var b strings.Builder
	for _, pair := range m.Pairs() {
		fmt.Fprintf(&b, "(%s, %s),\n", pyString(pair.Identifier), pyString(pair.Args))
	}
	return strings.TrimRight(b.String(), "\n")
}

// pyBool renders a Go bool as the Python boolean literal.
func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// pyString renders a Go string as a Python string literal. Go's quoted
// escape set is a subset Python accepts unchanged.
func pyString(s string) string {
	return strconv.Quote(s)
}

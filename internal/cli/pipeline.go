package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mvp-joe/compdb/internal/config"
	"github.com/mvp-joe/compdb/internal/script"
	"github.com/mvp-joe/compdb/internal/target"
)

// genFlags carries the per-invocation overrides shared by gen and watch.
// Flags beat the config file; boolean switches only override when the flag
// was actually set on the command line.
type genFlags struct {
	targets []string // label or label=args, order significant
	exclude []string

	skipHeaderExtraction bool
	replaceOutputPath    bool
	replaceExternalPath  bool

	skipHeaderSet      bool
	replaceOutputSet   bool
	replaceExternalSet bool
}

// buildScriptConfig turns file config plus flag overrides into the
// materializer's config: decode → normalize → exclude → validate.
func buildScriptConfig(cfg *config.Config, flags genFlags) (script.Config, error) {
	spec, err := resolveSpec(cfg, flags)
	if err != nil {
		return script.Config{}, err
	}

	targets := target.Normalize(spec)
	log.Debug("normalized target selection", "entries", targets.Len())

	patterns := append([]string{}, cfg.ExcludeTargets...)
	patterns = append(patterns, flags.exclude...)
	targets, err = targets.Exclude(patterns)
	if err != nil {
		return script.Config{}, err
	}

	if err := target.ValidateArgs(targets); err != nil {
		return script.Config{}, err
	}

	out := script.Config{
		Targets:              targets,
		SkipHeaderExtraction: cfg.SkipHeaderExtraction,
		ReplaceOutputPath:    cfg.ReplaceOutputPath,
		ReplaceExternalPath:  cfg.ReplaceExternalPath,
	}
	if flags.skipHeaderSet {
		out.SkipHeaderExtraction = flags.skipHeaderExtraction
	}
	if flags.replaceOutputSet {
		out.ReplaceOutputPath = flags.replaceOutputPath
	}
	if flags.replaceExternalSet {
		out.ReplaceExternalPath = flags.replaceExternalPath
	}
	return out, nil
}

// resolveSpec picks the target specification source: --target flags win
// over the config file; neither means default workspace scope.
func resolveSpec(cfg *config.Config, flags genFlags) (*target.Spec, error) {
	if len(flags.targets) > 0 {
		return specFromFlags(flags.targets)
	}
	return target.DecodeSpec(cfg.Targets)
}

// specFromFlags builds a spec from repeated --target values. Plain labels
// form a sequence; as soon as any value carries "=extra args", the whole
// set becomes a mapping so argument strings survive.
func specFromFlags(values []string) (*target.Spec, error) {
	hasArgs := false
	pairs := make([]target.Pair, 0, len(values))
	for _, v := range values {
		label, args, found := strings.Cut(v, "=")
		if label == "" {
			return nil, fmt.Errorf("%w: empty target label in %q", target.ErrInvalidSpec, v)
		}
		if found {
			hasArgs = true
		}
		pairs = append(pairs, target.Pair{Identifier: label, Args: args})
	}

	if hasArgs {
		return target.Mapping(pairs...), nil
	}
	labels := make([]string, 0, len(pairs))
	for _, p := range pairs {
		labels = append(labels, p.Identifier)
	}
	return target.Sequence(labels...), nil
}

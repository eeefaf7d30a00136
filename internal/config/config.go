// Package config loads and validates compdb configuration from
// .compdb/config.yml with environment variable overrides.
package config

// Config is the complete caller-facing configuration surface.
//
// Targets is deliberately untyped: the YAML value may be a single label, a
// list of labels, or a mapping from label to extra build arguments. Shape
// detection and normalization happen in the target package.
type Config struct {
	Targets any `yaml:"targets" mapstructure:"targets"`

	// Switches passed through unmodified to the generated script. Each is
	// independent; no combination is invalid.
	SkipHeaderExtraction bool `yaml:"skip_header_extraction" mapstructure:"skip_header_extraction"`
	ReplaceOutputPath    bool `yaml:"replace_output_path" mapstructure:"replace_output_path"`
	ReplaceExternalPath  bool `yaml:"replace_external_path" mapstructure:"replace_external_path"`

	// ExcludeTargets drops canonical entries whose label matches any of
	// these glob patterns.
	ExcludeTargets []string `yaml:"exclude_targets" mapstructure:"exclude_targets"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig defines where generated artifacts land, relative to the
// workspace root.
type OutputConfig struct {
	ScriptPath   string `yaml:"script_path" mapstructure:"script_path"`     // materialized extraction script
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"` // compilation database

	// Interpreter names a system command used to run the script, e.g.
	// "python3". Empty selects the embedded Python runtime, so extraction
	// works without a local Python installation.
	Interpreter string `yaml:"interpreter" mapstructure:"interpreter"`
}

// Default returns a configuration with sensible defaults: no explicit
// targets (every target in the workspace), all switches off, the embedded
// Python runtime as interpreter.
func Default() *Config {
	return &Config{
		ExcludeTargets: nil,
		Output: OutputConfig{
			ScriptPath:   ".compdb/extract.py",
			DatabasePath: "compile_commands.json",
		},
	}
}

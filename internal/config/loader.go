package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string

	// configFile, when set, names an explicit config file that must exist;
	// otherwise the loader searches rootDir/.compdb and tolerates absence.
	configFile string
}

// NewLoader creates a new configuration loader rooted at the workspace
// directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader for an explicit config file, as named by
// the --config flag. A missing file is an error here, unlike the search
// path.
func NewFileLoader(path string) Loader {
	return &loader{configFile: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (COMPDB_*)
// 2. Config file (.compdb/config.yml, .compdb/config.yaml, or --config)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".compdb"))
	}

	v.SetEnvPrefix("COMPDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Only scalar keys get env bindings; the targets value is polymorphic
	// and comes from the config file or CLI flags.
	v.BindEnv("skip_header_extraction")
	v.BindEnv("replace_output_path")
	v.BindEnv("replace_external_path")
	v.BindEnv("output.script_path")
	v.BindEnv("output.database_path")
	v.BindEnv("output.interpreter")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file on the search path is fine; defaults plus env
		// cover it. An explicit --config file must exist.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if l.configFile != "" || !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper lowercases keys recursively, including nested map keys, which
	// would silently corrupt case-sensitive target labels in the mapping
	// shape. Re-read the targets value from the raw file instead.
	if file := v.ConfigFileUsed(); file != "" {
		targets, err := rawTargets(file)
		if err != nil {
			return nil, err
		}
		cfg.Targets = targets
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// rawTargets extracts the targets key from the config file with a plain
// YAML decode, preserving identifier case exactly as written.
func rawTargets(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var doc struct {
		Targets any `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse targets: %w", err)
	}
	return doc.Targets, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("skip_header_extraction", defaults.SkipHeaderExtraction)
	v.SetDefault("replace_output_path", defaults.ReplaceOutputPath)
	v.SetDefault("replace_external_path", defaults.ReplaceExternalPath)
	v.SetDefault("exclude_targets", defaults.ExcludeTargets)

	v.SetDefault("output.script_path", defaults.Output.ScriptPath)
	v.SetDefault("output.database_path", defaults.Output.DatabasePath)
	v.SetDefault("output.interpreter", defaults.Output.Interpreter)
}

// LoadFromDir loads configuration from a specific workspace directory.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// LoadFromFile loads configuration from an explicit config file.
func LoadFromFile(path string) (*Config, error) {
	return NewFileLoader(path).Load()
}

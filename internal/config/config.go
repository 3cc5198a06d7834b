// SPDX-License-Identifier: MPL-2.0

// Package config loads the etstool project configuration: package lists and
// per-toolkit environment tables. Defaults are compiled in; a project
// etstool.cue file overrides only the fields it sets. Viper handles file
// discovery and defaulting, CUE handles parsing and schema validation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"etstool/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "etstool"
	// ConfigFileName is the project config file name.
	ConfigFileName = "etstool.cue"
	// ConfigPathEnvVar overrides the config file location when set.
	ConfigPathEnvVar = "ETSTOOL_CONFIG"
)

//go:embed config_schema.cue
var configSchema string

// configFilePathOverride is set by the --config flag before Load runs.
var configFilePathOverride string

// SetConfigFilePathOverride sets a custom config file path (from --config).
// An empty string restores default discovery.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Load resolves and loads the project configuration.
//
// Resolution order: the --config override, then $ETSTOOL_CONFIG, then
// etstool.cue in the current directory. A missing file is not an error
// (defaults apply); an explicitly named file that does not exist is.
func Load() (*Config, error) {
	path, explicit := resolveConfigPath()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		if fileExists(path) {
			if err := loadCUEIntoViper(v, path); err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("load project config").
					WithResource(path).
					WithSuggestion("Check the CUE syntax against the fields documented in config_schema.cue").
					WithSuggestion("Remove the file to fall back to the built-in package lists").
					Wrap(err).
					Build()
			}
		} else if explicit {
			return nil, issue.NewErrorContext().
				WithOperation("load project config").
				WithResource(path).
				WithSuggestion("Verify the path passed via --config or $ETSTOOL_CONFIG").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				Build()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// resolveConfigPath picks the config file path and reports whether it was
// explicitly requested (explicit paths must exist, discovered ones need not).
func resolveConfigPath() (path string, explicit bool) {
	if configFilePathOverride != "" {
		return configFilePathOverride, true
	}
	if env := os.Getenv(ConfigPathEnvVar); env != "" {
		return env, true
	}
	return ConfigFileName, false
}

// setDefaults seeds viper with the built-in tables so a partial config file
// overrides only the lists it names.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("dependencies", defaults.Dependencies)
	v.SetDefault("test_dependencies", defaults.TestDependencies)
	v.SetDefault("toolkits", defaults.Toolkits)
	v.SetDefault("pypi_dependencies", defaults.PypiDependencies)
	v.SetDefault("github_dependencies", defaults.GithubDependencies)
	v.SetDefault("environment_vars", defaults.EnvironmentVars)
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Unify with the schema; Concrete(false) because every field is optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	return v.MergeConfigMap(configMap)
}

// formatCUEError flattens a CUE error list into a single readable error.
func formatCUEError(err error, path string) error {
	return fmt.Errorf("invalid config %s: %s", path, cueerrors.Details(err, nil))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

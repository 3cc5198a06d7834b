// SPDX-License-Identifier: MPL-2.0

package config

import "strings"

type (
	// Config holds the package lists and environment-variable tables that
	// drive environment creation and test runs. Everything here is plain
	// data: the lifecycle commands template these values into edm/pip
	// invocations.
	Config struct {
		// Dependencies are the core packages installed with edm.
		Dependencies []string `mapstructure:"dependencies"`

		// TestDependencies are the test-runner packages installed with edm.
		TestDependencies []string `mapstructure:"test_dependencies"`

		// Toolkits maps a GUI toolkit name to the packages it requires.
		Toolkits map[string][]string `mapstructure:"toolkits"`

		// PypiDependencies are the packages installed from PyPI when
		// --source=pypi is selected.
		PypiDependencies []string `mapstructure:"pypi_dependencies"`

		// GithubDependencies are the git source URLs installed when
		// --source=github is selected.
		GithubDependencies []string `mapstructure:"github_dependencies"`

		// EnvironmentVars maps a toolkit name to KEY=VALUE entries exported
		// while the test suite runs. Entries are strings, not nested maps,
		// because viper lowercases map keys and ETS_TOOLKIT must survive
		// as written.
		EnvironmentVars map[string][]string `mapstructure:"environment_vars"`
	}
)

// DefaultConfig returns the built-in package lists and toolkit tables.
// A project etstool.cue overrides only the fields it sets.
func DefaultConfig() *Config {
	return &Config{
		Dependencies: []string{
			"apptools",
			"enable",
			"pyopengl",
			"six",
			"mayavi",
			"vtk",
		},
		TestDependencies: []string{
			"cython",
			"nose",
			"coverage",
			"wheel",
		},
		Toolkits: map[string][]string{
			"pyside": {"pyside"},
			// 4.12-1 builds are known bad, stay below
			"pyqt4": {"pyqt<4.12"},
		},
		PypiDependencies: []string{
			"traits",
			"traitsui",
			"pyopengl",
			"mayavi",
		},
		GithubDependencies: []string{
			"git+https://github.com/nucleic/enaml.git#egg=enaml",
			"git+https://github.com/enthought/traits.git#egg=traits",
			"git+https://github.com/enthought/traitsui.git#egg=traitsui",
			"git+https://github.com/mcfletch/pyopengl.git#egg=pyopengl",
			"git+https://github.com/nucleic/atom.git#egg=atom",
			"git+https://github.com/enthought/mayavi.git#egg=mayavi",
		},
		EnvironmentVars: map[string][]string{
			"pyside": {"ETS_TOOLKIT=qt4", "QT_API=pyside"},
			"pyqt":   {"ETS_TOOLKIT=qt4", "QT_API=pyqt"},
		},
	}
}

// ToolkitEnv returns the environment variables for toolkit as a map.
// A toolkit without an entry yields an empty map. Malformed entries
// (no '=') are skipped.
func (c *Config) ToolkitEnv(toolkit string) map[string]string {
	entries := c.EnvironmentVars[toolkit]
	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

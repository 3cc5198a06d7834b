// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"

	"etstool/internal/issue"
	"etstool/internal/params"

	"github.com/spf13/cobra"
)

// knownToolkits are the GUI toolkits the lifecycle commands accept.
var knownToolkits = []string{"pyside", "pyqt4"}

// lifecycleOpts holds the flag values shared by the lifecycle commands.
// install additionally sets version and source; the other commands keep
// their defaults.
type lifecycleOpts struct {
	runtime     string
	toolkit     string
	environment string
	version     string
	source      string
}

// addLifecycleFlags registers the flags every lifecycle command takes.
func addLifecycleFlags(cmd *cobra.Command, o *lifecycleOpts) {
	cmd.Flags().StringVar(&o.runtime, "runtime", "2.7", "the python runtime version")
	cmd.Flags().StringVar(&o.toolkit, "toolkit", "pyside", "the gui toolkit to use (pyside, pyqt4)")
	cmd.Flags().StringVar(&o.environment, "environment", "", "override the default environment name")
	o.version = params.VersionLatest
	o.source = params.SourceEDM
}

// validate rejects flag values outside the known sets before anything runs.
func (o *lifecycleOpts) validate() error {
	if !slices.Contains(knownToolkits, o.toolkit) {
		return issue.NewErrorContext().
			WithOperation("parse flags").
			WithResource(fmt.Sprintf("--toolkit=%s", o.toolkit)).
			WithSuggestion(fmt.Sprintf("Use one of: %v", knownToolkits)).
			Wrap(fmt.Errorf("unknown toolkit %q", o.toolkit)).
			Build()
	}
	return nil
}

// resolverOptions maps the flag values onto the parameter resolver's inputs.
func (o *lifecycleOpts) resolverOptions() params.Options {
	return params.Options{
		Runtime:     o.runtime,
		Toolkit:     o.toolkit,
		Environment: o.environment,
		Version:     o.version,
		Source:      o.source,
	}
}

// lifecycleRunE wraps a lifecycle run function into a cobra RunE:
// validate flags, load config, run, and fold any failure into exit code 1.
func lifecycleRunE(o *lifecycleOpts, run func(cmd *cobra.Command, o lifecycleOpts) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := o.validate(); err != nil {
			return exitFailure(err)
		}
		if err := run(cmd, *o); err != nil {
			return exitFailure(err)
		}
		return nil
	}
}

// exitFailure converts any lifecycle failure into the fixed exit status 1,
// formatting ActionableErrors with their suggestions.
func exitFailure(err error) error {
	return &ExitError{Code: 1, Err: errors.New(ErrorStyle.Render(formatErrorForDisplay(err, verbose)))}
}

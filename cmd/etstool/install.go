// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"etstool/internal/config"
	"etstool/internal/issue"
	"etstool/internal/params"
	"etstool/internal/runner"

	"github.com/spf13/cobra"
)

var (
	installOpts lifecycleOpts

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install project and dependencies into a clean EDM environment",
		RunE: lifecycleRunE(&installOpts, func(cmd *cobra.Command, o lifecycleOpts) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runInstall(cmd.Context(), cfg, o)
		}),
	}
)

func init() {
	addLifecycleFlags(installCmd, &installOpts)
	installCmd.Flags().StringVar(&installOpts.version, "enaml", params.VersionLatest, "the enaml version to build against")
	installCmd.Flags().StringVar(&installOpts.source, "source", params.SourceEDM, "the package source to use (edm, pypi, github)")
}

// runInstall creates a fresh environment and installs the dependency set
// plus the project itself.
func runInstall(ctx context.Context, cfg *config.Config, o lifecycleOpts) error {
	set, err := params.Resolve(o.resolverOptions(), cfg)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("resolve parameters").
			WithResource(fmt.Sprintf("--source=%s", o.source)).
			WithSuggestion("Use one of: edm, pypi, github").
			Wrap(err).
			Build()
	}
	// The edm source installs everything through edm; a non-empty pip set
	// here means the resolver and this command disagree.
	if o.source == params.SourceEDM && set.PipPackages != "" {
		return fmt.Errorf("internal error: edm source resolved pip packages: %s", set.PipPackages)
	}

	commands := []string{
		"edm environments create {environment} --force --version={runtime}",
		"edm install -y -e {environment} {test_packages} {edm_packages}",
	}
	if set.PipPackages != "" {
		commands = append(commands, "edm run -e {environment} -- pip install -U {pip_packages}")
	}
	commands = append(commands, "edm run -e {environment} -- pip install .")

	fmt.Printf("Creating environment %s\n", TitleStyle.Render(set.Environment))
	if err := runner.Run(ctx, commands, set.Map(), runner.Options{}); err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("Done install"))
	return nil
}

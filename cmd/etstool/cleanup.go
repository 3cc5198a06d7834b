// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"etstool/internal/config"
	"etstool/internal/params"
	"etstool/internal/runner"

	"github.com/spf13/cobra"
)

var (
	cleanupOpts lifecycleOpts

	cleanupCmd = &cobra.Command{
		Use:   "cleanup",
		Short: "Remove a development environment",
		RunE: lifecycleRunE(&cleanupOpts, func(cmd *cobra.Command, o lifecycleOpts) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runCleanup(cmd.Context(), cfg, o)
		}),
	}
)

func init() {
	addLifecycleFlags(cleanupCmd, &cleanupOpts)
}

// runCleanup removes the environment and its packages.
func runCleanup(ctx context.Context, cfg *config.Config, o lifecycleOpts) error {
	set, err := params.Resolve(o.resolverOptions(), cfg)
	if err != nil {
		return err
	}

	commands := []string{
		"edm run -e {environment} -- python setup.py clean",
		"edm environments remove {environment} --purge -y",
	}

	fmt.Printf("Cleaning up environment %s\n", TitleStyle.Render(set.Environment))
	if err := runner.Run(ctx, commands, set.Map(), runner.Options{}); err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("Done cleanup"))
	return nil
}

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
	updateOpts lifecycleOpts

	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update/Reinstall package into environment",
		RunE: lifecycleRunE(&updateOpts, func(cmd *cobra.Command, o lifecycleOpts) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runUpdate(cmd.Context(), cfg, o)
		}),
	}
)

func init() {
	addLifecycleFlags(updateCmd, &updateOpts)
}

// runUpdate reinstalls the project into an existing environment.
func runUpdate(ctx context.Context, cfg *config.Config, o lifecycleOpts) error {
	set, err := params.Resolve(o.resolverOptions(), cfg)
	if err != nil {
		return err
	}

	commands := []string{
		"edm run -e {environment} -- pip install .",
	}

	fmt.Printf("Re-installing in %s\n", TitleStyle.Render(set.Environment))
	if err := runner.Run(ctx, commands, set.Map(), runner.Options{}); err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("Done update"))
	return nil
}

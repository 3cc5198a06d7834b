// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"etstool/internal/config"

	"github.com/spf13/cobra"
)

var (
	testCleanOpts lifecycleOpts

	testCleanCmd = &cobra.Command{
		Use:   "test_clean",
		Short: "Run tests in a clean environment, cleaning up afterwards",
		RunE: lifecycleRunE(&testCleanOpts, func(cmd *cobra.Command, o lifecycleOpts) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runTestClean(cmd.Context(), cfg, o)
		}),
	}
)

func init() {
	addLifecycleFlags(testCleanCmd, &testCleanOpts)
}

// runTestClean composes install, test, and cleanup. Cleanup runs even when
// install or test fails; the first failure decides the exit status.
func runTestClean(ctx context.Context, cfg *config.Config, o lifecycleOpts) error {
	err := runInstall(ctx, cfg, o)
	if err == nil {
		err = runTest(ctx, cfg, o)
	}

	cleanupErr := runCleanup(ctx, cfg, o)
	if err != nil {
		if cleanupErr != nil {
			fmt.Println(WarningStyle.Render("cleanup also failed: " + cleanupErr.Error()))
		}
		return err
	}
	return cleanupErr
}

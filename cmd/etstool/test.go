// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"etstool/internal/config"
	"etstool/internal/issue"
	"etstool/internal/params"
	"etstool/internal/runner"
	"etstool/internal/tempdir"

	"github.com/spf13/cobra"
)

// coverageRC is the coverage configuration carried into the temp directory.
// Coverage must write its data file locally or it comes out empty.
const coverageRC = ".coveragerc"

var (
	testOpts lifecycleOpts

	testCmd = &cobra.Command{
		Use:   "test",
		Short: "Run the test suite in a given environment with the specified toolkit",
		RunE: lifecycleRunE(&testOpts, func(cmd *cobra.Command, o lifecycleOpts) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runTest(cmd.Context(), cfg, o)
		}),
	}
)

func init() {
	addLifecycleFlags(testCmd, &testOpts)
}

// runTest runs the suite inside a scoped temp directory so stray local
// traits_enaml code can't shadow the installed package, and copies the
// coverage results back out.
func runTest(ctx context.Context, cfg *config.Config, o lifecycleOpts) error {
	set, err := params.Resolve(o.resolverOptions(), cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(coverageRC); err != nil {
		return issue.NewErrorContext().
			WithOperation("run test suite").
			WithResource(coverageRC).
			WithSuggestion("Run etstool from the project root, next to .coveragerc").
			Wrap(err).
			Build()
	}

	environ := cfg.ToolkitEnv(o.toolkit)
	environ["PYTHONUNBUFFERED"] = "1"

	commands := []string{
		"edm run -e {environment} -- coverage run -p -m nose.core -v traits_enaml --nologcapture",
	}

	fmt.Printf("Running tests in %s\n", TitleStyle.Render(set.Environment))
	err = tempdir.In(tempdir.Options{
		Files:        []string{coverageRC},
		CaptureGlobs: []string{"./.coverage*"},
	}, func() error {
		return runner.Run(ctx, commands, set.Map(), runner.Options{ExtraEnv: environ})
	})
	if err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("Done test"))
	return nil
}

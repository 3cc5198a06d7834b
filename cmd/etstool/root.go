// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for etstool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"etstool/internal/config"
	"etstool/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   config.AppName,
		Short: "Manage EDM test environments for traits-enaml",
		Long: TitleStyle.Render("etstool") + SubtitleStyle.Render(" - EDM test environment automation") + `

etstool creates, populates, tests, updates, and tears down isolated
EDM environments for running the traits-enaml test suite. It removes
the variables of a developer's local Python setup so test runs stay
repeatable.

` + SubtitleStyle.Render("Typical session:") + `
  etstool install --runtime=2.7 --toolkit=pyside
  etstool test --runtime=2.7 --toolkit=pyside
  etstool cleanup --runtime=2.7 --toolkit=pyside

Or all three at once:
  etstool test_clean --runtime=2.7 --toolkit=pyside

Package lists live in built-in defaults and can be overridden with an
etstool.cue file in the project directory. See 'etstool docs'.`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./etstool.cue)")

	// Add subcommands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(testCleanCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(docsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig wires the global flags into the config and log layers.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors render their suggestions; verbose mode shows the chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs.md
var usageManual string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the development workflow manual",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rendered, err := renderMarkdown(usageManual)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

// renderMarkdown renders markdown content for the terminal using glamour.
func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

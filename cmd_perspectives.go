package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prism/perspective"
	"prism/tui"
)

var perspectivesCmd = &cobra.Command{
	Use:   "perspectives",
	Short: "List the four perspectives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPerspectives(cmd.OutOrStdout())
	},
}

func listPerspectives(w io.Writer) error {
	for _, p := range perspective.All() {
		_, err := fmt.Fprintf(w, "%s %s\n  %s\n",
			tui.PerspectiveBadge(p),
			tui.MutedStyle.Render(fmt.Sprintf("(%s, typicality %s)", p.Key, p.Typicality)),
			p.Description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

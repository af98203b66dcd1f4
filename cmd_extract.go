package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prism/session"
	"prism/tui"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a document with Upstage Document Parse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}

		result, err := a.extract(cmd.Context(), session.New(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		if showSource, _ := cmd.Flags().GetBool("source"); showSource {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.MutedStyle.Render("source: "+result.Source))
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().Bool("source", false, "report which response field held the text")
}

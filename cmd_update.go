package main

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prism/tui"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update prism to the latest release",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().Bool("check", false, "only report whether a newer release exists")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	checkOnly, _ := cmd.Flags().GetBool("check")
	out := cmd.OutOrStdout()

	if version == "dev" {
		return eris.New("update: development builds cannot be updated, install a release build")
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return eris.Wrap(err, "update: create release source")
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return eris.Wrap(err, "update: create updater")
	}

	repo := cfg.Update.Repository
	latest, found, err := updater.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repo))
	if err != nil {
		return eris.Wrapf(err, "update: detect latest release of %s", repo)
	}
	if !found {
		return eris.Errorf("update: no release found for %s", repo)
	}

	if latest.LessOrEqual(version) {
		fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("prism %s is up to date", version)))
		return nil
	}

	if checkOnly {
		fmt.Fprintln(out, tui.InfoStyle.Render(fmt.Sprintf("prism %s is available (current %s)", latest.Version(), version)))
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return eris.Wrap(err, "update: locate executable")
	}

	zap.L().Info("updating", zap.String("from", version), zap.String("to", latest.Version()), zap.String("asset", latest.AssetName))
	if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
		return eris.Wrap(err, "update: install release")
	}

	fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("Updated prism to %s", latest.Version())))
	return nil
}

package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prism/config"
	"prism/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Multi-perspective thinking partner",
	Long: `PRISM looks at a question from four perspectives (traditional, practical,
critical and creative) using the Upstage Solar API, then lets you dig into any
one of them with follow-up questions. Documents (PDF, PNG, JPG) are read with
Upstage Document Parse.

Run without a subcommand for the interactive workflow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return eris.Wrap(err, "prism: load config")
		}
		cfg = c

		l, err := logging.Init(logging.Options{
			Level:   cfg.Log.Level,
			File:    cfg.Log.File,
			Console: verbose,
		})
		if err != nil {
			return eris.Wrap(err, "prism: init logger")
		}
		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: runInteractive,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "config file (default ./prism.yaml or ~/.config/prism/prism.yaml)")
	f.BoolVarP(&verbose, "verbose", "v", false, "also write logs to stderr")

	rootCmd.AddCommand(analyzeCmd, extractCmd, perspectivesCmd, updateCmd, versionCmd)
}

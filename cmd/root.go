package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "gptbridge",
		Short:         "Discord bot bridging slash commands and threads to OpenAI completions",
		Long:          "gptbridge runs a Discord bot that answers /ask with a one-shot completion and keeps chat sessions in threads, gated by per-user request quotas. The other subcommands provision quotas, inspect sessions and store credentials.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.syncLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default $HOME/.config/gptbridge/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newQuotaCmd(app),
		newSessionCmd(app),
		newStatusCmd(app),
		newSecretCmd(app),
	)

	return rootCmd
}

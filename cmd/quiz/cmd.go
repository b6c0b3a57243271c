package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quiz",
		Short:         "A multiple-choice quiz served over the web or as a Telegram bot.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.String("env", "local", "application environment: local, production or test (env: APP_ENV)")
	fs.String("items", "assets/data/items.json", "path to the JSON file with quiz decks (env: ITEMS_PATH)")
	fs.String("assets", "assets", "directory item images are relative to (env: ASSETS_DIR)")
	fs.String("lives-mode", "preserve", "keep lives between games (preserve) or start with full lives (reset) (env: LIVES_MODE)")
	fs.Duration("session-timeout", 60*time.Minute, "time before idle games are ended (env: SESSION_TIMEOUT)")

	cmd.AddCommand(newWebCmd(), newBotCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quiz v{{.Version}}\n")

	return cmd
}

func newWebCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the quiz to browsers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeb(cmd.Context(), cmd.Flags())
		},
	}

	fs := cmd.Flags()
	fs.StringP("bind", "b", "0.0.0.0", "address to bind to (env: HTTP_BIND)")
	fs.IntP("port", "p", 8080, "port to listen on (env: HTTP_PORT)")

	return cmd
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the quiz as a Telegram bot (env: TELEGRAM_API_TOKEN).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context(), cmd.Flags())
		},
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"kursly/internal/interfaces/cli/bot"
	"kursly/internal/interfaces/cli/migrate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kursly",
		Short: "Kursly - Telegram course subscription bot",
		Long:  `Kursly sells course subscriptions over Telegram and gates access to the private course group.`,
	}

	rootCmd.AddCommand(
		bot.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

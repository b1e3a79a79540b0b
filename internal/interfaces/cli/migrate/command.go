// Package migrate provides the database migration CLI.
package migrate

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"kursly/internal/infrastructure/config"
	"kursly/internal/infrastructure/database"
	"kursly/internal/infrastructure/migration"
	"kursly/internal/shared/logger"
)

var (
	env   string
	steps int
)

// NewCommand creates the migrate command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run, roll back, and inspect versioned SQL migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newForceCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := initRunner()
			if err != nil {
				return err
			}
			defer database.Close()
			return runner.Up(database.Get())
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := initRunner()
			if err != nil {
				return err
			}
			defer database.Close()
			return runner.Down(database.Get(), steps)
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := initRunner()
			if err != nil {
				return err
			}
			defer database.Close()

			version, dirty, err := runner.Version(database.Get())
			if err != nil {
				return err
			}
			fmt.Printf("version: %d dirty: %v\n", version, dirty)
			return nil
		},
	}
}

func newForceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Force the migration version and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			runner, err := initRunner()
			if err != nil {
				return err
			}
			defer database.Close()
			return runner.Force(database.Get(), version)
		},
	}
}

func initRunner() (*migration.Runner, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs("./migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	return migration.NewRunner(scriptsPath, cfg.Database.Driver), nil
}

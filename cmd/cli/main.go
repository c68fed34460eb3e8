package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/cmd/cli/commands"
	"github.com/jakechorley/nursery-shifts/internal/config"
	"github.com/jakechorley/nursery-shifts/pkg/filestore"
	"github.com/jakechorley/nursery-shifts/pkg/postgres"
	"github.com/jakechorley/nursery-shifts/pkg/utils/logging"
)

var (
	env     string
	app     = &commands.AppContext{}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Nursery shift CLI - generate and review monthly schedules",
		Long:  `A CLI tool for generating monthly nursery shift schedules and checking edits against the staffing rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.CheckCmd(app))
	rootCmd.AddCommand(commands.CandidatesCmd(app))
	rootCmd.AddCommand(commands.ShortagesCmd(app))
	rootCmd.AddCommand(commands.SwapsCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully", zap.String("store", app.Cfg.Store))

	switch app.Cfg.Store {
	case config.StorePostgres:
		app.Logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = database
		app.Migrator = database
		closeDB = database.Close
	case config.StoreFile:
		app.Logger.Info("Opening snapshot file", zap.String("path", app.Cfg.SnapshotPath))
		store, err := filestore.Open(app.Cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		app.Database = store
	default:
		return fmt.Errorf("unknown store %q", app.Cfg.Store)
	}
	app.Logger.Info("Store initialized successfully")

	return nil
}

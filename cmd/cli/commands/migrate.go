package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrator == nil {
				return fmt.Errorf("store %q has no migrations", app.Cfg.Store)
			}

			applied, err := app.Migrator.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}
			app.Logger.Info("Migrations applied", zap.Strings("files", applied))

			if len(applied) == 0 {
				fmt.Println("\nDatabase is up to date")
				return nil
			}

			fmt.Printf("\n✓ Applied %d migrations:\n", len(applied))
			for _, f := range applied {
				fmt.Printf("  - %s\n", f)
			}
			fmt.Println()
			return nil
		},
	}
}

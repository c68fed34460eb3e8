package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nursery-shifts/pkg/core/services"
	"github.com/jakechorley/nursery-shifts/pkg/filestore"
)

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "Import staff, holidays, time ranges and settings from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := filestore.Open(args[0])
			if err != nil {
				return err
			}

			result, err := services.ImportSnapshot(app.Ctx, src, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Imported %s\n\n", args[0])
			fmt.Printf("Staff:       %d\n", result.Staff)
			fmt.Printf("Holidays:    %d\n", result.Holidays)
			fmt.Printf("Time ranges: %d\n", result.TimeRanges)
			fmt.Printf("Settings:    %t\n\n", result.Settings)
			return nil
		},
	}
}

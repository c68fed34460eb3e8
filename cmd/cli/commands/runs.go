package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved generation runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")

			runs, err := services.ListRuns(app.Ctx, app.Database, app.Logger, year, month)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("\nNo generation runs found")
				return nil
			}

			fmt.Printf("\n%-38s %-8s %-22s %6s %10s  %s\n", "ID", "Month", "Seed", "Cells", "Shortfalls", "Created")
			for _, r := range runs {
				fmt.Printf("%-38s %d-%02d  %-22d %6d %10d  %s\n",
					r.ID, r.Year, r.Month, r.Seed, r.CellCount, r.ShortfallCount, r.CreatedAt)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Only runs for this year")
	cmd.Flags().Int("month", 0, "Only runs for this month")

	return cmd
}

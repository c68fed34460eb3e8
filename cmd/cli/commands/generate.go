package commands

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

// parseYearMonth reads the <year> <month> arguments
func parseYearMonth(yearArg, monthArg string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("year must be a positive integer, got: %s", yearArg)
	}
	month, err := strconv.Atoi(monthArg)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got: %s", monthArg)
	}
	return year, time.Month(month), nil
}

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <year> <month>",
		Short: "Generate the schedule for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[0], args[1])
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetUint64("seed")
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			quiet, _ := cmd.Flags().GetBool("quiet")

			app.Logger.Debug("generate command",
				zap.Int("year", year),
				zap.Int("month", int(month)),
				zap.Uint64("seed", seed),
				zap.Bool("dry_run", dryRun))

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, year, month, seed, dryRun)
			if err != nil {
				return err
			}

			if !quiet {
				snapshot, err := services.LoadMonth(app.Ctx, app.Database, app.Cfg, app.Logger, year, month)
				if err != nil {
					return err
				}
				fmt.Println()
				printSchedule(os.Stdout, snapshot, result.Schedule)
			}

			fmt.Println()
			if result.Saved {
				fmt.Printf("✓ Schedule saved for %d-%02d\n\n", year, month)
				fmt.Printf("Run ID: %s\n", result.Run.ID)
			} else {
				fmt.Printf("DRY RUN: schedule for %d-%02d was not saved\n\n", year, month)
			}
			fmt.Printf("Seed:   %d\n", result.Run.Seed)
			fmt.Printf("Cells:  %d\n\n", result.Run.CellCount)

			printShortfalls(os.Stdout, result.Shortfalls)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed for tie-breaks (random when omitted)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to the store")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the schedule grid")

	return cmd
}

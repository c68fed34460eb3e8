package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

func printViolations(violations []constraints.Violation) {
	for _, v := range violations {
		color := colorYellow
		if v.IsHard() {
			color = colorRed
		}
		fmt.Printf("  %s[%s] %s%s: %s\n", color, v.Severity, v.Rule, colorReset, v.Message)
	}
}

// CheckCmd creates the check command
func CheckCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <date> <staff_id> <code>",
		Short: "Check a proposed edit against the scheduling rules",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			review, err := services.ReviewEdit(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s on %s: %s -> %s\n\n", review.StaffID, review.Date, displayCode(review.Current), displayCode(review.Proposed))
			if len(review.Violations) == 0 {
				fmt.Printf("%s✓ No rule violations%s\n\n", colorGreen, colorReset)
				return nil
			}

			printViolations(review.Violations)
			fmt.Println()
			if review.Allowed {
				fmt.Printf("%s✓ Allowed with warnings%s\n\n", colorYellow, colorReset)
			} else {
				fmt.Printf("%s✗ Not allowed%s\n\n", colorRed, colorReset)
			}
			return nil
		},
	}
}

// CandidatesCmd creates the candidates command
func CandidatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <date> <band>",
		Short: "Rank staff who could take a band on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := services.FindCandidates(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n%d candidates for %s on %s:\n\n", len(candidates), args[1], args[0])
			for i, c := range candidates {
				mark := colorGreen + "✓" + colorReset
				if !c.Assignable {
					mark = colorRed + "✗" + colorReset
				}
				fmt.Printf("  %2d. %s %-20s (now %s)\n", i+1, mark, c.StaffName, displayCode(c.CurrentShift))
				for _, v := range c.Violations {
					fmt.Printf("        %s: %s\n", v.Rule, v.Message)
				}
			}
			fmt.Println()
			return nil
		},
	}
}

// ShortagesCmd creates the shortages command
func ShortagesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shortages <date>",
		Short: "List understaffed bands on a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.ListShortages(app.Ctx, app.Database, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Println()
			if !report.IsWeekday {
				fmt.Printf("%s is not a weekday; no band floors apply\n\n", report.Date)
				return nil
			}

			if len(report.Coverage) == 0 {
				fmt.Printf("%s✓ %s is fully covered%s\n\n", colorGreen, report.Date, colorReset)
				return nil
			}

			fmt.Printf("Shortages on %s:\n", report.Date)
			for _, s := range report.Coverage {
				fmt.Printf("  %s%-10s%s %d/%d (needs %d more)\n", colorRed, shortageLabel(s.Pattern), colorReset, s.Current, s.Required, s.Deficit())
			}
			fmt.Println()
			return nil
		},
	}
}

// SwapsCmd creates the swaps command
func SwapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "swaps <date> <band>",
		Short: "Suggest swaps that would cover a short band",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := services.SuggestSwaps(app.Ctx, app.Database, app.Cfg, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println()
			if len(suggestions) == 0 {
				fmt.Printf("No legal swaps found for %s on %s\n\n", args[1], args[0])
				return nil
			}

			for i, s := range suggestions {
				fmt.Printf("  %d. %s takes %s (from %s), %s takes %s (from %s)\n", i+1,
					s.StaffA.StaffName, strings.ToUpper(args[1]), s.StaffA.CurrentShift,
					s.StaffB.StaffName, s.StaffA.CurrentShift, displayCode(s.StaffB.CurrentShift))
				fmt.Printf("     %s\n", s.Benefit)
			}
			fmt.Println()
			return nil
		},
	}
}

func displayCode(code model.ShiftCode) string {
	if code == model.ShiftNone {
		return "(empty)"
	}
	return string(code)
}

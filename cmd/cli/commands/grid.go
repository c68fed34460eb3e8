package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

// codeColor picks the display colour of a cell
func codeColor(code model.ShiftCode) string {
	switch {
	case code == model.EarliestBand || code == model.LatestBand:
		return colorYellow
	case code.IsWorkBand():
		return colorGreen
	case code.IsProtected():
		return colorCyan
	case code == model.ShiftDayOff:
		return colorDim
	default:
		return colorRed
	}
}

// printSchedule writes the month as a staff-by-day grid
func printSchedule(w io.Writer, snapshot *services.MonthSnapshot, schedule *model.Schedule) {
	dates := calendar.MonthDates(snapshot.Year, snapshot.Month)

	nameColWidth := 12
	for _, s := range snapshot.Staff {
		if len(s.Name)+2 > nameColWidth {
			nameColWidth = len(s.Name) + 2
		}
	}
	const dayColWidth = 5

	fmt.Fprintf(w, "%-*s", nameColWidth, "")
	for _, d := range dates {
		fmt.Fprintf(w, "%-*s", dayColWidth, d[8:])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-*s", nameColWidth, "")
	for _, d := range dates {
		fmt.Fprintf(w, "%-*s", dayColWidth, calendar.Weekday(d).String()[:2])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("-", nameColWidth+dayColWidth*len(dates)))

	for _, s := range snapshot.Staff {
		fmt.Fprintf(w, "%-*s", nameColWidth, s.Name)
		for _, d := range dates {
			code := schedule.Get(d, s.ID)
			if code == model.ShiftNone {
				fmt.Fprintf(w, "%s%-*s%s", colorDim, dayColWidth, ".", colorReset)
				continue
			}
			fmt.Fprintf(w, "%s%-*s%s", codeColor(code), dayColWidth, code, colorReset)
		}
		fmt.Fprintln(w)
	}
}

// printShortfalls lists coverage gaps, one line per day
func printShortfalls(w io.Writer, shortfalls []services.DayShortfall) {
	if len(shortfalls) == 0 {
		fmt.Fprintf(w, "%s✓ Every weekday is fully covered%s\n", colorGreen, colorReset)
		return
	}

	fmt.Fprintf(w, "%s⚠️  %d days below target:%s\n", colorYellow, len(shortfalls), colorReset)
	for _, d := range shortfalls {
		parts := make([]string, 0, len(d.Shortages))
		for _, s := range d.Shortages {
			parts = append(parts, fmt.Sprintf("%s %d/%d", shortageLabel(s.Pattern), s.Current, s.Required))
		}
		fmt.Fprintf(w, "  %s  %s\n", d.Date, strings.Join(parts, ", "))
	}
}

func shortageLabel(code model.ShiftCode) string {
	if code == model.ShiftNone {
		return "headcount"
	}
	return string(code)
}

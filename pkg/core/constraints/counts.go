package constraints

import (
	"slices"
	"time"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// CountOnDay returns how many staff hold code on date
func CountOnDay(schedule *model.Schedule, date string, code model.ShiftCode) int {
	count := 0
	for _, id := range schedule.StaffIDs(date) {
		if schedule.Get(date, id) == code {
			count++
		}
	}
	return count
}

// MonthlyCount returns how often staffID holds any of codes within the context's
// month, ignoring excludeDate (pass "" to count every day)
func MonthlyCount(ctx *Context, staffID, excludeDate string, codes ...model.ShiftCode) int {
	count := 0
	for _, date := range ctx.MonthDates() {
		if date == excludeDate {
			continue
		}
		if slices.Contains(codes, ctx.Schedule.Get(date, staffID)) {
			count++
		}
	}
	return count
}

// PartTimeCredit counts qualified part-time staff credited toward band on date
// through their time range. Part-timers holding a cell of their own are
// counted by that cell instead.
func PartTimeCredit(ctx *Context, ranges model.TimeRangeSchedule, date string, band model.ShiftCode) int {
	if ranges == nil {
		return 0
	}
	pattern, ok := ctx.Settings.Pattern(band)
	if !ok {
		return 0
	}

	count := 0
	for _, s := range ctx.Staff {
		if !s.IsPartTime() || !s.Qualified {
			continue
		}
		if ctx.Schedule.Get(date, s.ID) != model.ShiftNone {
			continue
		}
		r, ok := ranges.Get(date, s.ID)
		if !ok {
			continue
		}
		if len(r.Patterns) > 0 {
			if r.Credits(band) {
				count++
			}
			continue
		}
		if overlapHours(r, pattern) >= ctx.Settings.PartTimeOverlapHours {
			count++
		}
	}
	return count
}

// EffectiveCount is the schedule count for band plus part-time credit
func EffectiveCount(ctx *Context, ranges model.TimeRangeSchedule, date string, band model.ShiftCode) int {
	return CountOnDay(ctx.Schedule, date, band) + PartTimeCredit(ctx, ranges, date, band)
}

// Headcount returns the number of staff working on date, excluding cooks and the
// director. Part-timers without a cell count when they have a time range.
func Headcount(ctx *Context, ranges model.TimeRangeSchedule, date string) int {
	count := 0
	for _, s := range ctx.Staff {
		if s.ShiftType == model.ShiftTypeCooking || s.Position == model.PositionDirector {
			continue
		}
		code := ctx.Schedule.Get(date, s.ID)
		if code.IsWorkBand() {
			count++
			continue
		}
		if s.IsPartTime() && code == model.ShiftNone {
			if _, ok := ranges.Get(date, s.ID); ok {
				count++
			}
		}
	}
	return count
}

func overlapHours(r model.TimeRange, p model.PatternDefinition) float64 {
	rs, err := model.ParseClock(r.Start)
	if err != nil {
		return 0
	}
	re, err := model.ParseClock(r.End)
	if err != nil {
		return 0
	}
	ps, pe, err := p.Window()
	if err != nil {
		return 0
	}
	overlap := min(re, pe) - max(rs, ps)
	if overlap <= 0 {
		return 0
	}
	return float64(overlap) / float64(time.Hour)
}

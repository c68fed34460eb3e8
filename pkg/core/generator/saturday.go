package generator

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// assignSaturdays staffs each open Saturday up to the Saturday target.
//
// Part-timers already working that day count toward the target. The rest is
// drawn from qualified standard staff with the fewest Saturdays so far, ties
// broken at random. Each selected worker gets a compensatory day in the same
// week; everyone else on the main roster is off.
func assignSaturdays(st *RunState) {
	for _, date := range st.Dates {
		if calendar.Weekday(date) != time.Saturday || calendar.IsHoliday(date, st.Holidays) {
			continue
		}

		partTimers := 0
		for _, s := range st.Staff {
			if !s.IsPartTime() {
				continue
			}
			_, hasRange := st.TimeRanges.Get(date, s.ID)
			if st.Schedule.Get(date, s.ID).IsWorkBand() || hasRange {
				partTimers++
			}
		}
		needed := st.Settings.SaturdayTarget - partTimers

		var eligible []model.Staff
		for _, s := range st.Staff {
			if s.IsStandard() && s.Qualified && !st.Schedule.Get(date, s.ID).IsProtected() {
				eligible = append(eligible, s)
			}
		}
		st.Rand.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		sort.SliceStable(eligible, func(i, j int) bool {
			return st.saturdayCounts[eligible[i].ID] < st.saturdayCounts[eligible[j].ID]
		})

		onlyIncompatibility := constraints.CheckOptions{Only: []constraints.RuleName{constraints.RuleIncompatibility}}
		selected := make(map[string]bool)
		for _, s := range eligible {
			if len(selected) >= needed {
				break
			}
			if !st.canPlace(date, s.ID, st.Settings.SaturdayShift, onlyIncompatibility) {
				continue
			}
			st.assign(date, s.ID, st.Settings.SaturdayShift)
			st.saturdayCounts[s.ID]++
			selected[s.ID] = true
			if !s.SaturdayOnly {
				st.grantCompDay(date, s.ID)
			}
		}

		for _, s := range st.Staff {
			if selected[s.ID] || !s.IsMainShiftEligible() || s.ID == st.ChiefID || s.ID == st.DirectorID {
				continue
			}
			st.assign(date, s.ID, model.ShiftDayOff)
		}

		st.Logger.Debug("Saturday staffed",
			zap.String("date", date),
			zap.Int("part_time", partTimers),
			zap.Int("selected", len(selected)),
			zap.Int("needed", max(needed, 0)))
	}
}

// grantCompDay gives a Saturday worker a compensatory day off in the same week.
// Friday back to Monday is scanned and the weekday carrying the least leave
// (compensatory plus paid) wins; on a tie the day nearest Saturday is kept.
func (st *RunState) grantCompDay(saturday, staffID string) {
	week := calendar.WeekDates(saturday)

	best, bestLoad := "", -1
	for i := len(week) - 2; i >= 0; i-- {
		date := week[i]
		if !st.inMonth[date] || calendar.IsHoliday(date, st.Holidays) {
			continue
		}
		if st.Schedule.Get(date, staffID).IsProtected() {
			continue
		}
		load := constraints.CountOnDay(st.Schedule, date, model.ShiftCompOff) +
			constraints.CountOnDay(st.Schedule, date, model.ShiftPaidLeave)
		if bestLoad < 0 || load < bestLoad {
			best, bestLoad = date, load
		}
	}

	if best == "" {
		st.Logger.Debug("No weekday available for compensatory day",
			zap.String("saturday", saturday), zap.String("staff_id", staffID))
		return
	}
	st.assign(best, staffID, model.ShiftCompOff)
}

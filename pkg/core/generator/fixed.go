package generator

import (
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// assignDirector gives the director a day off on every date
func assignDirector(st *RunState) {
	if st.DirectorID == "" {
		return
	}
	for _, date := range st.Dates {
		st.assign(date, st.DirectorID, model.ShiftDayOff)
	}
}

// reserveChief leaves the chief unassigned until the fallback phase
func reserveChief(st *RunState) {
	if st.ChiefID != "" {
		st.Logger.Debug("Chief held in reserve", zap.String("staff_id", st.ChiefID))
	}
}

// assignCooks puts cooks on the base band on weekdays. On Saturdays one cook,
// taken in turn, works and the rest are off. Sundays and holidays are off.
func assignCooks(st *RunState) {
	var cooks []model.Staff
	for _, s := range st.Staff {
		if s.ShiftType == model.ShiftTypeCooking {
			cooks = append(cooks, s)
		}
	}
	if len(cooks) == 0 {
		return
	}

	next := 0
	for _, date := range st.Dates {
		if !calendar.IsWorkDay(date, st.Holidays) {
			for _, c := range cooks {
				st.assign(date, c.ID, model.ShiftDayOff)
			}
			continue
		}

		if calendar.Weekday(date) != time.Saturday {
			for _, c := range cooks {
				st.assign(date, c.ID, model.BaseBand)
			}
			continue
		}

		// Skip cooks on leave so the rotation still staffs the day
		working := ""
		for i := range cooks {
			c := cooks[(next+i)%len(cooks)]
			if !st.Schedule.Get(date, c.ID).IsProtected() {
				working = c.ID
				next = (next + i + 1) % len(cooks)
				break
			}
		}
		for _, c := range cooks {
			if c.ID == working {
				st.assign(date, c.ID, model.BaseBand)
			} else {
				st.assign(date, c.ID, model.ShiftDayOff)
			}
		}
	}
}

// keepPartTime is a pass-through: part-time cells are only ever entered by hand
// and were carried over when the run state was seeded
func keepPartTime(st *RunState) {
	seeded := 0
	for _, s := range st.Staff {
		if !s.IsPartTime() {
			continue
		}
		for _, date := range st.Dates {
			if !st.isEmpty(date, s.ID) {
				seeded++
			}
		}
	}
	st.Logger.Debug("Part-time cells preserved", zap.Int("count", seeded))
}

// fillRemaining gives every empty non-part-time cell a day off
func fillRemaining(st *RunState) {
	filled := 0
	for _, date := range st.Dates {
		for _, s := range st.Staff {
			if s.IsPartTime() || !st.isEmpty(date, s.ID) {
				continue
			}
			st.assign(date, s.ID, model.ShiftDayOff)
			filled++
		}
	}
	if filled > 0 {
		st.Logger.Debug("Filled empty cells with day off", zap.Int("count", filled))
	}
}

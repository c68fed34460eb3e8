package generator

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// relaxedPlacement is the second pass of weekday filling: a second extreme
// band in the same week is allowed, every other hard rule still applies
var relaxedPlacement = constraints.CheckOptions{SkipWeeklyCap: true, SkipMinimumCount: true, SkipSoft: true}

// extremeOrder returns which extreme band to fill first on a weekday.
// Late in the week the latest band goes first so Friday closers do not
// collide with Monday openers.
func extremeOrder(date string) []model.ShiftCode {
	switch calendar.Weekday(date) {
	case time.Thursday, time.Friday:
		return []model.ShiftCode{model.LatestBand, model.EarliestBand}
	default:
		return []model.ShiftCode{model.EarliestBand, model.LatestBand}
	}
}

// assignWeekdays covers the extreme bands on each open weekday, then one slot of
// each middle band, then puts the rest of the standard roster on the base band
func assignWeekdays(st *RunState) {
	for _, date := range st.Dates {
		if !calendar.IsWeekday(date, st.Holidays) {
			continue
		}

		for _, band := range extremeOrder(date) {
			need := st.Settings.Minimum(band) - st.count(date, band)
			if need <= 0 {
				continue
			}
			if filled := st.fillBand(date, band, need); filled < need {
				st.Logger.Debug("Extreme band left short",
					zap.String("date", date), zap.String("band", string(band)), zap.Int("missing", need-filled))
			}
		}

		for _, band := range []model.ShiftCode{model.ShiftE2, model.ShiftL1, model.ShiftL2} {
			if need := 1 - st.count(date, band); need > 0 {
				st.fillBand(date, band, need)
			}
		}

		for _, s := range st.weekdayPool(date) {
			if !st.placeBase(date, s.ID) {
				st.Logger.Debug("No conflict-free band for staff",
					zap.String("date", date), zap.String("staff_id", s.ID))
			}
		}
	}
}

// fillBand places up to need unassigned standard staff on band, ranked by how
// rarely they have worked it. A second pass relaxes the weekly cap.
// Returns how many were placed.
func (st *RunState) fillBand(date string, band model.ShiftCode, need int) int {
	filled := 0
	for _, opts := range []constraints.CheckOptions{constraints.GeneratorPlacement, relaxedPlacement} {
		for _, s := range st.rankByBand(st.weekdayPool(date), band) {
			if filled >= need {
				return filled
			}
			if st.canPlace(date, s.ID, band, opts) && st.assign(date, s.ID, band) {
				filled++
			}
		}
	}
	return filled
}

// coverLateRoles makes sure the infant and toddler rooms each have someone on a
// late band, moving a same-room colleague off the base band when needed
func coverLateRoles(st *RunState) {
	for _, date := range st.Dates {
		if !calendar.IsWeekday(date, st.Holidays) {
			continue
		}
		for _, role := range []model.Role{model.RoleInfant, model.RoleToddler} {
			if st.hasLateCover(date, role) {
				continue
			}
			for _, s := range st.Staff {
				if s.Role != role || !s.IsStandard() || st.Schedule.Get(date, s.ID) != model.BaseBand {
					continue
				}
				if st.canPlace(date, s.ID, model.LateBands[0], constraints.GeneratorPlacement) {
					st.assign(date, s.ID, model.LateBands[0])
					st.Logger.Debug("Moved staff to cover late room",
						zap.String("date", date), zap.String("role", string(role)), zap.String("staff_id", s.ID))
					break
				}
			}
		}
	}
}

func (st *RunState) hasLateCover(date string, role model.Role) bool {
	for _, s := range st.Staff {
		if s.Role == role && slices.Contains(model.LateBands, st.Schedule.Get(date, s.ID)) {
			return true
		}
	}
	return false
}

// topUpMinimums pulls standard staff into any band below its minimum, then onto
// the base band while the day's headcount is below target
func topUpMinimums(st *RunState) {
	for _, date := range st.Dates {
		if !calendar.IsWeekday(date, st.Holidays) {
			continue
		}

		for _, p := range st.Settings.Patterns {
			for st.count(date, p.Code) < p.Minimum {
				if !st.topUpBand(date, p.Code) {
					st.Logger.Debug("Band below minimum after top-up",
						zap.String("date", date), zap.String("band", string(p.Code)),
						zap.Int("count", st.count(date, p.Code)), zap.Int("minimum", p.Minimum))
					break
				}
			}
		}

		for st.headcount(date) < st.Settings.DailyHeadcount {
			if !st.topUpHeadcount(date) {
				st.Logger.Debug("Headcount below target after top-up",
					zap.String("date", date), zap.Int("headcount", st.headcount(date)))
				break
			}
		}
	}
}

// topUpBand moves one eligible staff member onto band. Unassigned staff are
// eligible, as are base-band staff while the base band is above its minimum.
func (st *RunState) topUpBand(date string, band model.ShiftCode) bool {
	baseSpare := band != model.BaseBand &&
		constraints.CountOnDay(st.Schedule, date, model.BaseBand) > st.Settings.Minimum(model.BaseBand)

	var pool []model.Staff
	for _, s := range st.Staff {
		if !s.IsStandard() || s.SaturdayOnly {
			continue
		}
		current := st.Schedule.Get(date, s.ID)
		if current == model.ShiftNone || (baseSpare && current == model.BaseBand) {
			pool = append(pool, s)
		}
	}

	for _, s := range st.rankByBand(pool, band) {
		if st.canPlace(date, s.ID, band, constraints.GeneratorPlacement) && st.assign(date, s.ID, band) {
			return true
		}
	}
	return false
}

// topUpHeadcount puts one unassigned standard staff member to work, preferring
// whoever has worked the key bands least
func (st *RunState) topUpHeadcount(date string) bool {
	for _, s := range st.rankByBand(st.weekdayPool(date), model.ShiftNone) {
		if st.placeBase(date, s.ID) {
			return true
		}
	}
	return false
}

package generator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// peerMove is used when moving a base-band colleague into a short band on the
// same day: their week and the band they leave are not re-checked
var peerMove = constraints.CheckOptions{SkipWeeklyCap: true, SkipMinimumCount: true, SkipSoft: true}

// chiefPlacement only guards the chief against closing then opening
var chiefPlacement = constraints.CheckOptions{Only: []constraints.RuleName{constraints.RuleClosingToOpening}}

// shortage is a gap found by the chief fallback; an empty band means total headcount
type shortage struct {
	band    model.ShiftCode
	current int
	floor   int
}

// nextShortage returns the highest priority gap on date: the earliest band, the
// latest band, the remaining bands in order, then total headcount
func (st *RunState) nextShortage(date string) (shortage, bool) {
	priority := []model.ShiftCode{model.EarliestBand, model.LatestBand}
	for _, b := range model.WorkBands {
		if !b.IsExtreme() {
			priority = append(priority, b)
		}
	}
	for _, band := range priority {
		floor := st.Settings.Minimum(band)
		if current := st.count(date, band); current < floor {
			return shortage{band: band, current: current, floor: floor}, true
		}
	}
	if current := st.headcount(date); current < st.Settings.DailyHeadcount {
		return shortage{current: current, floor: st.Settings.DailyHeadcount}, true
	}
	return shortage{}, false
}

// assignChief closes the gaps left on each open weekday. A base-band colleague
// is moved into a short band first; the chief only steps in when nobody can,
// at most once a day and up to the monthly cap. Any day the chief is not
// needed is a day off.
func assignChief(st *RunState) {
	if st.ChiefID == "" {
		return
	}

	for _, date := range st.Dates {
		if !calendar.IsWeekday(date, st.Holidays) {
			st.assign(date, st.ChiefID, model.ShiftDayOff)
			continue
		}

		// Each pass either moves a colleague off the base band or uses up the
		// chief for the day, so the loop is bounded by the roster size
		for range len(st.Staff) + 1 {
			gap, ok := st.nextShortage(date)
			if !ok {
				break
			}
			if gap.band != model.ShiftNone && st.movePeer(date, gap.band) {
				continue
			}
			if !st.placeChief(date, gap) {
				break
			}
		}

		if st.isEmpty(date, st.ChiefID) {
			st.assign(date, st.ChiefID, model.ShiftDayOff)
		}
	}

	st.Logger.Debug("Chief fallback complete",
		zap.Int("assignments", st.chiefAssignments),
		zap.Int("cap", st.Settings.ChiefMonthlyCap))
}

// movePeer moves a standard base-band colleague into band
func (st *RunState) movePeer(date string, band model.ShiftCode) bool {
	if band == model.BaseBand {
		return false
	}
	for _, s := range st.Staff {
		if !s.IsStandard() || st.Schedule.Get(date, s.ID) != model.BaseBand {
			continue
		}
		if st.canPlace(date, s.ID, band, peerMove) && st.assign(date, s.ID, band) {
			st.Logger.Debug("Moved colleague into short band",
				zap.String("date", date), zap.String("band", string(band)), zap.String("staff_id", s.ID))
			return true
		}
	}
	return false
}

// placeChief puts the chief on the short band, or the base band for a
// headcount gap
func (st *RunState) placeChief(date string, gap shortage) bool {
	if !st.isEmpty(date, st.ChiefID) || st.chiefAssignments >= st.Settings.ChiefMonthlyCap {
		return false
	}
	band := gap.band
	if band == model.ShiftNone {
		band = model.BaseBand
	}
	if !st.canPlace(date, st.ChiefID, band, chiefPlacement) || !st.assign(date, st.ChiefID, band) {
		return false
	}
	st.chiefAssignments++
	st.Logger.Debug("Chief covering shortage",
		zap.String("date", date),
		zap.String("band", string(band)),
		zap.Int("count", gap.current),
		zap.Int("floor", gap.floor))
	return true
}

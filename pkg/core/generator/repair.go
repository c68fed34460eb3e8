package generator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// forbiddenPair reports whether prev on one work day followed by cur on the
// next breaks the adjacency rules
func forbiddenPair(prev, cur model.ShiftCode) bool {
	switch {
	case prev == model.LatestBand && cur == model.EarliestBand:
		return true
	case cur.IsExtreme() && prev == cur:
		return true
	}
	return false
}

// repairAdjacency demotes to the base band any shift that follows a forbidden
// shift on the previous work day. Part-time cells are left as entered.
func repairAdjacency(st *RunState) {
	for _, date := range st.Dates {
		if !calendar.IsWorkDay(date, st.Holidays) {
			continue
		}
		prev := calendar.PrevWorkDay(date, st.Holidays)
		if prev == "" {
			continue
		}
		for _, s := range st.Staff {
			if s.IsPartTime() {
				continue
			}
			cur := st.Schedule.Get(date, s.ID)
			if !forbiddenPair(st.Schedule.Get(prev, s.ID), cur) {
				continue
			}
			st.assign(date, s.ID, model.BaseBand)
			st.Logger.Debug("Demoted shift after adjacency conflict",
				zap.String("date", date), zap.String("staff_id", s.ID), zap.String("was", string(cur)))
		}
	}
}

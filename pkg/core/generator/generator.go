// Package generator builds a month schedule from the roster, holidays, settings
// and whatever has already been entered by hand.
//
// Generation runs a fixed sequence of phases over a private RunState. Later
// phases may override earlier ones, but paid leave and compensatory days are
// never overwritten. The generator never fails: minimums it cannot meet are
// left visible as shortfalls in the returned schedule.
package generator

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// GenerationConfig contains everything a generation run reads
type GenerationConfig struct {
	// Staff is the full roster, in display order
	Staff []model.Staff

	// Holidays are closure days on which nobody works
	Holidays []model.Holiday

	// Year and Month select the month to generate
	Year  int
	Month time.Month

	// Settings holds band definitions and staffing targets (zero values fall back to defaults)
	Settings model.Settings

	// Existing is the schedule as currently stored. Paid leave, compensatory days
	// and part-time cells inside the month are kept; cells outside the month are
	// read for adjacency with the neighbouring months only.
	Existing *model.Schedule

	// TimeRanges are the part-time working intervals for the month
	TimeRanges model.TimeRangeSchedule

	// Rand drives the tie-break between equally ranked Saturday candidates.
	// Nil seeds from the clock.
	Rand *rand.Rand

	// Logger receives phase progress at debug level. Nil disables logging.
	Logger *zap.Logger
}

type phase struct {
	name string
	run  func(st *RunState)
}

// phases run in this order, once each
var phases = []phase{
	{"director", assignDirector},
	{"chief_reservation", reserveChief},
	{"cooking_rotation", assignCooks},
	{"saturday_staffing", assignSaturdays},
	{"weekday_assignment", assignWeekdays},
	{"late_role_coverage", coverLateRoles},
	{"part_time", keepPartTime},
	{"minimum_top_up", topUpMinimums},
	{"chief_fallback", assignChief},
	{"completeness_fill", fillRemaining},
	{"adjacency_repair", repairAdjacency},
	{"final_completeness_fill", fillRemaining},
}

// Generate produces a schedule for the configured month.
// The result holds only dates of that month.
func Generate(cfg GenerationConfig) *model.Schedule {
	st := NewRunState(cfg)

	st.Logger.Debug("Generating schedule",
		zap.Int("year", st.Year),
		zap.String("month", st.Month.String()),
		zap.Int("staff_count", len(st.Staff)),
		zap.Int("holiday_count", len(st.Holidays)))

	for _, p := range phases {
		p.run(st)
		st.Logger.Debug("Phase complete", zap.String("phase", p.name), zap.Int("cells", st.Schedule.Len()))
	}

	return st.Schedule.Restrict(st.Dates)
}

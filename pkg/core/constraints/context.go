// Package constraints evaluates proposed schedule edits against the staffing rules.
//
// The same rule set backs interactive editing (CheckConstraints,
// EvaluateCandidates, FindSwapSuggestions) and batch generation, so both
// enforce identical policy. Every call is stateless: results depend only on
// the Context passed in.
package constraints

import (
	"time"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// Context is the snapshot every rule check reads from
type Context struct {
	Schedule *model.Schedule
	Staff    []model.Staff
	Holidays []model.Holiday
	Settings model.Settings
	Year     int
	Month    time.Month

	// TimeRanges holds part-time intervals; optional, used for coverage reporting
	TimeRanges model.TimeRangeSchedule

	staffByID map[string]model.Staff
}

// NewContext bundles a schedule snapshot with the roster, holidays and settings
func NewContext(schedule *model.Schedule, staff []model.Staff, holidays []model.Holiday, settings model.Settings, year int, month time.Month) *Context {
	if schedule == nil {
		schedule = model.NewSchedule()
	}
	ctx := &Context{
		Schedule:  schedule,
		Staff:     staff,
		Holidays:  holidays,
		Settings:  settings.Normalized(),
		Year:      year,
		Month:     month,
		staffByID: make(map[string]model.Staff, len(staff)),
	}
	for _, s := range staff {
		ctx.staffByID[s.ID] = s
	}
	return ctx
}

// WithSchedule returns a copy of the context reading from another schedule
func (c *Context) WithSchedule(schedule *model.Schedule) *Context {
	cp := *c
	cp.Schedule = schedule
	return &cp
}

// WithTimeRanges returns a copy of the context with part-time intervals attached
func (c *Context) WithTimeRanges(ranges model.TimeRangeSchedule) *Context {
	cp := *c
	cp.TimeRanges = ranges
	return &cp
}

// DateKey returns the key for a day of the context's month
func (c *Context) DateKey(day int) string {
	return calendar.DateKey(c.Year, c.Month, day)
}

// MonthDates returns every date of the context's month
func (c *Context) MonthDates() []string {
	return calendar.MonthDates(c.Year, c.Month)
}

// StaffByID looks up a roster member
func (c *Context) StaffByID(id string) (model.Staff, bool) {
	s, ok := c.staffByID[id]
	return s, ok
}

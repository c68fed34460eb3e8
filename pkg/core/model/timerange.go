package model

import "slices"

// TimeRange is a part-time staff member's working interval on one day
type TimeRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`

	// Patterns lists the bands this interval is credited toward.
	// When empty, credit is decided by overlap with each band's hours.
	Patterns []ShiftCode `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// Credits returns true if the range explicitly credits the band
func (r TimeRange) Credits(code ShiftCode) bool {
	return slices.Contains(r.Patterns, code)
}

// TimeRangeSchedule maps date to staff ID to working interval (part-time only)
type TimeRangeSchedule map[string]map[string]TimeRange

// Get returns the range for a staff member on date
func (t TimeRangeSchedule) Get(date, staffID string) (TimeRange, bool) {
	day, ok := t[date]
	if !ok {
		return TimeRange{}, false
	}
	r, ok := day[staffID]
	return r, ok
}

// Set records a range, creating the day map as needed
func (t TimeRangeSchedule) Set(date, staffID string, r TimeRange) {
	day, ok := t[date]
	if !ok {
		day = make(map[string]TimeRange)
		t[date] = day
	}
	day[staffID] = r
}

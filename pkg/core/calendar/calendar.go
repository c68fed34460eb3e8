// Package calendar provides the date helpers shared by generation and evaluation.
// Dates are handled as YYYY-MM-DD keys throughout.
package calendar

import (
	"fmt"
	"time"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// Layout is the date key format
const Layout = "2006-01-02"

// maxWorkDaySearch bounds the search for an adjacent work day
const maxWorkDaySearch = 14

// DateKey formats a calendar date
func DateKey(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(Layout)
}

// ParseDateKey parses a YYYY-MM-DD key
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// DaysInMonth returns the number of days in the month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates returns every date key of the month, ascending
func MonthDates(year int, month time.Month) []string {
	n := DaysInMonth(year, month)
	dates := make([]string, n)
	for d := 1; d <= n; d++ {
		dates[d-1] = DateKey(year, month, d)
	}
	return dates
}

// Weekday returns the weekday of a key (Sunday for unparseable keys)
func Weekday(key string) time.Weekday {
	t, err := ParseDateKey(key)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// AddDays shifts a key by n days
func AddDays(key string, n int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// IsHoliday reports whether key is a listed holiday
func IsHoliday(key string, holidays []model.Holiday) bool {
	for _, h := range holidays {
		if h.Date == key {
			return true
		}
	}
	return false
}

// IsWorkDay reports whether key is neither a Sunday nor a holiday
func IsWorkDay(key string, holidays []model.Holiday) bool {
	return Weekday(key) != time.Sunday && !IsHoliday(key, holidays)
}

// IsWeekday reports whether key is a Monday-Friday work day
func IsWeekday(key string, holidays []model.Holiday) bool {
	wd := Weekday(key)
	return wd != time.Saturday && wd != time.Sunday && !IsHoliday(key, holidays)
}

// PrevWorkDay returns the closest earlier work day, or "" if none is found nearby
func PrevWorkDay(key string, holidays []model.Holiday) string {
	return stepWorkDay(key, holidays, -1)
}

// NextWorkDay returns the closest later work day, or "" if none is found nearby
func NextWorkDay(key string, holidays []model.Holiday) string {
	return stepWorkDay(key, holidays, 1)
}

func stepWorkDay(key string, holidays []model.Holiday, dir int) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return ""
	}
	for i := 1; i <= maxWorkDaySearch; i++ {
		candidate := t.AddDate(0, 0, dir*i).Format(Layout)
		if IsWorkDay(candidate, holidays) {
			return candidate
		}
	}
	return ""
}

// WeekDates returns the Monday-Saturday week containing key.
// A Sunday belongs to the week that ended the day before.
func WeekDates(key string) []string {
	t, err := ParseDateKey(key)
	if err != nil {
		return nil
	}
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday; Sunday gives 6
	monday := t.AddDate(0, 0, -offset)
	week := make([]string, 6)
	for i := range week {
		week[i] = monday.AddDate(0, 0, i).Format(Layout)
	}
	return week
}

package db

import "github.com/jakechorley/nursery-shifts/pkg/core/model"

// StaffRecord represents a database staff record
type StaffRecord struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Position      string   `yaml:"position"`
	ShiftType     string   `yaml:"shiftType"`
	Qualified     bool     `yaml:"qualified"`
	Role          string   `yaml:"role"`
	Incompatible  []string `yaml:"incompatible,omitempty"`
	EarlyShiftCap *int     `yaml:"earlyShiftCap,omitempty"`
	SaturdayOnly  bool     `yaml:"saturdayOnly,omitempty"`
	SortOrder     int      `yaml:"sortOrder"`
}

// HolidayRecord represents a database holiday record
type HolidayRecord struct {
	Date string `yaml:"date"`
	Name string `yaml:"name,omitempty"`
}

// SettingsRecord represents the stored staffing thresholds
type SettingsRecord struct {
	Settings  model.Settings `yaml:"settings"`
	UpdatedAt string         `yaml:"updatedAt,omitempty"`
}

// ScheduleEntry represents one stored schedule cell
type ScheduleEntry struct {
	Date    string `yaml:"date"`
	StaffID string `yaml:"staffID"`
	Code    string `yaml:"code"`
}

// TimeRangeEntry represents a part-time working interval on one day
type TimeRangeEntry struct {
	Date     string   `yaml:"date"`
	StaffID  string   `yaml:"staffID"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// GenerationRun records one saved generation of a month
type GenerationRun struct {
	ID             string `yaml:"id"`
	Year           int    `yaml:"year"`
	Month          int    `yaml:"month"`
	Seed           uint64 `yaml:"seed"`
	CellCount      int    `yaml:"cellCount"`
	ShortfallCount int    `yaml:"shortfallCount"`
	CreatedAt      string `yaml:"createdAt"`
}

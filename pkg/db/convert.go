package db

import (
	"fmt"
	"slices"
	"sort"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

var (
	knownPositions = []model.Position{
		model.PositionDirector, model.PositionChief, model.PositionCaregiver, model.PositionPartTime, model.PositionCook,
	}
	knownShiftTypes = []model.ShiftType{
		model.ShiftTypeRegular, model.ShiftTypePartTime, model.ShiftTypeBackup, model.ShiftTypeCooking, model.ShiftTypeNoShift,
	}
	knownRoles = []model.Role{
		model.RoleInfant, model.RoleToddler, model.RoleFree, model.RoleCooking, model.RoleNone,
	}
)

// ToStaff converts staff records to the roster, ordered by SortOrder.
// An empty role is read as "none".
func ToStaff(records []StaffRecord) ([]model.Staff, error) {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	staff := make([]model.Staff, 0, len(sorted))
	for _, r := range sorted {
		s := model.Staff{
			ID:            r.ID,
			Name:          r.Name,
			Position:      model.Position(r.Position),
			ShiftType:     model.ShiftType(r.ShiftType),
			Qualified:     r.Qualified,
			Role:          model.Role(r.Role),
			Incompatible:  r.Incompatible,
			EarlyShiftCap: r.EarlyShiftCap,
			SaturdayOnly:  r.SaturdayOnly,
		}
		if s.Role == "" {
			s.Role = model.RoleNone
		}

		switch {
		case s.ID == "":
			return nil, fmt.Errorf("staff record %q has no id", r.Name)
		case !slices.Contains(knownPositions, s.Position):
			return nil, fmt.Errorf("staff %s has unknown position %q", s.ID, r.Position)
		case !slices.Contains(knownShiftTypes, s.ShiftType):
			return nil, fmt.Errorf("staff %s has unknown shift type %q", s.ID, r.ShiftType)
		case !slices.Contains(knownRoles, s.Role):
			return nil, fmt.Errorf("staff %s has unknown role %q", s.ID, r.Role)
		}
		staff = append(staff, s)
	}
	return staff, nil
}

// StaffRecords converts a roster to records, keeping its order
func StaffRecords(staff []model.Staff) []StaffRecord {
	records := make([]StaffRecord, 0, len(staff))
	for i, s := range staff {
		records = append(records, StaffRecord{
			ID:            s.ID,
			Name:          s.Name,
			Position:      string(s.Position),
			ShiftType:     string(s.ShiftType),
			Qualified:     s.Qualified,
			Role:          string(s.Role),
			Incompatible:  s.Incompatible,
			EarlyShiftCap: s.EarlyShiftCap,
			SaturdayOnly:  s.SaturdayOnly,
			SortOrder:     i,
		})
	}
	return records
}

// ToHolidays converts holiday records
func ToHolidays(records []HolidayRecord) []model.Holiday {
	holidays := make([]model.Holiday, 0, len(records))
	for _, r := range records {
		holidays = append(holidays, model.Holiday{Date: r.Date, Name: r.Name})
	}
	return holidays
}

// ToSchedule builds a schedule from stored entries. Unknown codes are read as empty.
func ToSchedule(entries []ScheduleEntry, roster ...string) *model.Schedule {
	s := model.NewSchedule(roster...)
	for _, e := range entries {
		s.Set(e.Date, e.StaffID, model.ShiftCode(e.Code).Normalize())
	}
	return s
}

// ScheduleEntries flattens a schedule in date then roster order
func ScheduleEntries(s *model.Schedule) []ScheduleEntry {
	cells := s.Cells()
	entries := make([]ScheduleEntry, 0, len(cells))
	for _, c := range cells {
		entries = append(entries, ScheduleEntry{Date: c.Date, StaffID: c.StaffID, Code: string(c.Code)})
	}
	return entries
}

// ToTimeRanges converts stored part-time intervals
func ToTimeRanges(entries []TimeRangeEntry) (model.TimeRangeSchedule, error) {
	ranges := model.TimeRangeSchedule{}
	for _, e := range entries {
		r := model.TimeRange{Start: e.Start, End: e.End}
		for _, p := range e.Patterns {
			code, err := model.ParseShiftCode(p)
			if err != nil || !code.IsWorkBand() {
				return nil, fmt.Errorf("time range for %s on %s credits unknown band %q", e.StaffID, e.Date, p)
			}
			r.Patterns = append(r.Patterns, code)
		}
		ranges.Set(e.Date, e.StaffID, r)
	}
	return ranges, nil
}

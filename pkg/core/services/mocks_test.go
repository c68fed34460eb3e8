package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// mockStore is an in-memory store covering every interface the services use
type mockStore struct {
	staff      []db.StaffRecord
	holidays   []db.HolidayRecord
	settings   *db.SettingsRecord
	entries    []db.ScheduleEntry
	timeRanges []db.TimeRangeEntry
	runs       []db.GenerationRun

	replacedFrom string
	replacedTo   string
	replaced     []db.ScheduleEntry
	replaceCalls int

	importedStaff    []db.StaffRecord
	importedHolidays []db.HolidayRecord
	importedRanges   []db.TimeRangeEntry
	savedSettings    *db.SettingsRecord

	getStaffErr error
	replaceErr  error
	runsErr     error
}

func inRange(date, from, to string) bool {
	return date >= from && date <= to
}

func (m *mockStore) GetStaff(ctx context.Context) ([]db.StaffRecord, error) {
	if m.getStaffErr != nil {
		return nil, m.getStaffErr
	}
	return m.staff, nil
}

func (m *mockStore) GetHolidays(ctx context.Context, from, to string) ([]db.HolidayRecord, error) {
	var out []db.HolidayRecord
	for _, h := range m.holidays {
		if inRange(h.Date, from, to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockStore) GetSettings(ctx context.Context) (*db.SettingsRecord, error) {
	return m.settings, nil
}

func (m *mockStore) GetScheduleEntries(ctx context.Context, from, to string) ([]db.ScheduleEntry, error) {
	var out []db.ScheduleEntry
	for _, e := range m.entries {
		if inRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) GetTimeRanges(ctx context.Context, from, to string) ([]db.TimeRangeEntry, error) {
	var out []db.TimeRangeEntry
	for _, r := range m.timeRanges {
		if inRange(r.Date, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ReplaceScheduleEntries(ctx context.Context, from, to string, entries []db.ScheduleEntry) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls++
	m.replacedFrom, m.replacedTo = from, to
	m.replaced = entries
	return nil
}

func (m *mockStore) InsertGenerationRun(ctx context.Context, run *db.GenerationRun) error {
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockStore) GetGenerationRuns(ctx context.Context) ([]db.GenerationRun, error) {
	if m.runsErr != nil {
		return nil, m.runsErr
	}
	return m.runs, nil
}

func (m *mockStore) UpsertStaff(ctx context.Context, staff []db.StaffRecord) error {
	m.importedStaff = append(m.importedStaff, staff...)
	return nil
}

func (m *mockStore) UpsertHolidays(ctx context.Context, holidays []db.HolidayRecord) error {
	m.importedHolidays = append(m.importedHolidays, holidays...)
	return nil
}

func (m *mockStore) SaveSettings(ctx context.Context, record *db.SettingsRecord) error {
	m.savedSettings = record
	return nil
}

func (m *mockStore) UpsertTimeRanges(ctx context.Context, ranges []db.TimeRangeEntry) error {
	m.importedRanges = append(m.importedRanges, ranges...)
	return nil
}

// rosterRecords returns a chief, n caregivers and a cook
func rosterRecords(n int) []db.StaffRecord {
	roles := []string{"infant", "toddler", "free"}
	records := []db.StaffRecord{
		{ID: "chief", Name: "Chief", Position: "chief", ShiftType: "regular", Qualified: true, Role: "free", SortOrder: 0},
	}
	for i := range n {
		records = append(records, db.StaffRecord{
			ID:        fmt.Sprintf("c%02d", i+1),
			Name:      fmt.Sprintf("Caregiver %d", i+1),
			Position:  "caregiver",
			ShiftType: "regular",
			Qualified: true,
			Role:      roles[i%len(roles)],
			SortOrder: i + 1,
		})
	}
	records = append(records, db.StaffRecord{
		ID: "cook", Name: "Cook", Position: "cook", ShiftType: "cooking", Role: "cooking", SortOrder: n + 1,
	})
	return records
}

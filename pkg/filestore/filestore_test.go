package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

var _ db.Database = (*Store)(nil)
var _ db.Importer = (*Store)(nil)

const sampleSnapshot = `
staff:
  - id: b
    name: Bea
    position: caregiver
    shiftType: regular
    qualified: true
    role: toddler
    sortOrder: 2
  - id: a
    name: Ann
    position: chief
    shiftType: regular
    qualified: true
    role: free
    sortOrder: 1
holidays:
  - date: "2025-04-29"
    name: Showa Day
  - date: "2025-05-03"
settings:
  settings:
    saturdayTarget: 4
schedule:
  - date: "2025-03-31"
    staffID: a
    code: L3
  - date: "2025-04-01"
    staffID: b
    code: PAID
timeRanges:
  - date: "2025-04-02"
    staffID: b
    start: "09:00"
    end: "13:00"
    patterns: [M]
`

func openSample(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nursery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0644))
	s, err := Open(path)
	require.NoError(t, err)
	return s
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	staff, err := s.GetStaff(context.Background())
	require.NoError(t, err)
	assert.Empty(t, staff)

	settings, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestOpen_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("staff: [\n"), 0644))

	_, err := Open(path)
	assert.ErrorContains(t, err, "failed to parse snapshot")
}

func TestReads(t *testing.T) {
	ctx := context.Background()
	s := openSample(t)

	staff, err := s.GetStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, "a", staff[0].ID)

	holidays, err := s.GetHolidays(ctx, "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, []db.HolidayRecord{{Date: "2025-04-29", Name: "Showa Day"}}, holidays)

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 4, settings.Settings.SaturdayTarget)

	entries, err := s.GetScheduleEntries(ctx, "2025-03-25", "2025-04-30")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	ranges, err := s.GetTimeRanges(ctx, "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, []string{"M"}, ranges[0].Patterns)
}

func TestReplaceScheduleEntries_PersistsAndKeepsOtherMonths(t *testing.T) {
	ctx := context.Background()
	s := openSample(t)

	err := s.ReplaceScheduleEntries(ctx, "2025-04-01", "2025-04-30", []db.ScheduleEntry{
		{Date: "2025-04-01", StaffID: "b", Code: string(model.ShiftPaidLeave)},
		{Date: "2025-04-02", StaffID: "b", Code: string(model.ShiftE1)},
	})
	require.NoError(t, err)

	reopened, err := Open(s.Path())
	require.NoError(t, err)

	entries, err := reopened.GetScheduleEntries(ctx, "2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, []db.ScheduleEntry{
		{Date: "2025-03-31", StaffID: "a", Code: "L3"},
		{Date: "2025-04-01", StaffID: "b", Code: "PAID"},
		{Date: "2025-04-02", StaffID: "b", Code: "E1"},
	}, entries)
}

func TestGenerationRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openSample(t)

	require.NoError(t, s.InsertGenerationRun(ctx, &db.GenerationRun{ID: "first", Year: 2025, Month: 4}))
	require.NoError(t, s.InsertGenerationRun(ctx, &db.GenerationRun{ID: "second", Year: 2025, Month: 5}))

	runs, err := s.GetGenerationRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].ID)
	assert.NotEmpty(t, runs[0].CreatedAt)
}

func TestUpserts(t *testing.T) {
	ctx := context.Background()
	s := openSample(t)

	require.NoError(t, s.UpsertStaff(ctx, []db.StaffRecord{
		{ID: "a", Name: "Ann Renamed", Position: "chief", ShiftType: "regular", SortOrder: 1},
		{ID: "c", Name: "Cal", Position: "cook", ShiftType: "cooking", SortOrder: 3},
	}))
	require.NoError(t, s.UpsertHolidays(ctx, []db.HolidayRecord{{Date: "2025-04-29", Name: "Renamed"}}))
	require.NoError(t, s.UpsertTimeRanges(ctx, []db.TimeRangeEntry{{Date: "2025-04-02", StaffID: "b", Start: "10:00", End: "14:00"}}))
	require.NoError(t, s.SaveSettings(ctx, &db.SettingsRecord{Settings: model.DefaultSettings()}))

	reopened, err := Open(s.Path())
	require.NoError(t, err)

	staff, err := reopened.GetStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 3)
	assert.Equal(t, "Ann Renamed", staff[0].Name)

	holidays, err := reopened.GetHolidays(ctx, "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", holidays[0].Name)

	ranges, err := reopened.GetTimeRanges(ctx, "2025-04-02", "2025-04-02")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "10:00", ranges[0].Start)

	settings, err := reopened.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings.Settings)
	assert.NotEmpty(t, settings.UpdatedAt)
}

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

func TestToStaff_OrdersBySortOrder(t *testing.T) {
	records := []StaffRecord{
		{ID: "b", Name: "B", Position: "caregiver", ShiftType: "regular", Role: "infant", SortOrder: 2},
		{ID: "a", Name: "A", Position: "chief", ShiftType: "regular", SortOrder: 1},
	}

	staff, err := ToStaff(records)
	require.NoError(t, err)
	require.Len(t, staff, 2)

	assert.Equal(t, "a", staff[0].ID)
	assert.Equal(t, model.RoleNone, staff[0].Role, "empty role reads as none")
	assert.Equal(t, model.RoleInfant, staff[1].Role)
}

func TestToStaff_UnknownValues(t *testing.T) {
	_, err := ToStaff([]StaffRecord{{ID: "a", Position: "janitor", ShiftType: "regular"}})
	assert.ErrorContains(t, err, "unknown position")

	_, err = ToStaff([]StaffRecord{{ID: "a", Position: "caregiver", ShiftType: "nights"}})
	assert.ErrorContains(t, err, "unknown shift type")

	_, err = ToStaff([]StaffRecord{{Name: "Nobody", Position: "caregiver", ShiftType: "regular"}})
	assert.ErrorContains(t, err, "has no id")
}

func TestStaffRecords_RoundTripKeepsOrder(t *testing.T) {
	limit := 4
	staff := []model.Staff{
		{ID: "z", Name: "Z", Position: model.PositionCaregiver, ShiftType: model.ShiftTypeRegular, Role: model.RoleFree, EarlyShiftCap: &limit},
		{ID: "a", Name: "A", Position: model.PositionCook, ShiftType: model.ShiftTypeCooking, Role: model.RoleCooking},
	}

	back, err := ToStaff(StaffRecords(staff))
	require.NoError(t, err)
	assert.Equal(t, staff, back)
}

func TestToSchedule_DropsUnknownCodes(t *testing.T) {
	s := ToSchedule([]ScheduleEntry{
		{Date: "2025-04-01", StaffID: "a", Code: "E1"},
		{Date: "2025-04-01", StaffID: "b", Code: "NIGHT"},
	}, "a", "b")

	assert.Equal(t, model.ShiftE1, s.Get("2025-04-01", "a"))
	assert.Equal(t, model.ShiftNone, s.Get("2025-04-01", "b"))
	assert.Equal(t, 1, s.Len())
}

func TestScheduleEntries_Order(t *testing.T) {
	s := model.NewSchedule("b", "a")
	s.Set("2025-04-02", "a", model.ShiftM)
	s.Set("2025-04-01", "a", model.ShiftE1)
	s.Set("2025-04-01", "b", model.ShiftL3)

	assert.Equal(t, []ScheduleEntry{
		{Date: "2025-04-01", StaffID: "b", Code: "L3"},
		{Date: "2025-04-01", StaffID: "a", Code: "E1"},
		{Date: "2025-04-02", StaffID: "a", Code: "M"},
	}, ScheduleEntries(s))
}

func TestToTimeRanges(t *testing.T) {
	ranges, err := ToTimeRanges([]TimeRangeEntry{
		{Date: "2025-04-01", StaffID: "p", Start: "09:00", End: "13:00", Patterns: []string{"m", "L1"}},
	})
	require.NoError(t, err)

	r, ok := ranges.Get("2025-04-01", "p")
	require.True(t, ok)
	assert.Equal(t, []model.ShiftCode{model.ShiftM, model.ShiftL1}, r.Patterns)

	_, err = ToTimeRanges([]TimeRangeEntry{{Date: "2025-04-01", StaffID: "p", Patterns: []string{"OFF"}}})
	assert.ErrorContains(t, err, "unknown band")
}

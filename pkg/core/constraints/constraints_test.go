package constraints

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// April 2025: the 1st is a Tuesday, the 7th a Monday, the 12th a Saturday

func regular(id string) model.Staff {
	return model.Staff{
		ID:        id,
		Name:      "Staff " + id,
		Position:  model.PositionCaregiver,
		ShiftType: model.ShiftTypeRegular,
		Qualified: true,
		Role:      model.RoleFree,
	}
}

func newTestContext(schedule *model.Schedule, staff ...model.Staff) *Context {
	return NewContext(schedule, staff, nil, model.DefaultSettings(), 2025, time.April)
}

func rules(violations []Violation) []RuleName {
	names := make([]RuleName, 0, len(violations))
	for _, v := range violations {
		names = append(names, v.Rule)
	}
	return names
}

func intPtr(i int) *int { return &i }

func TestCheckConstraints_ClosingToOpening(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftL3)
	ctx := newTestContext(s, regular("a"))

	violations := CheckConstraints(ctx, 8, "a", model.ShiftE1)
	assert.Contains(t, rules(violations), RuleClosingToOpening)
	assert.True(t, HasHard(violations))
}

func TestCheckConstraints_ClosingToOpening_FromNextDay(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"))

	violations := CheckConstraints(ctx, 7, "a", model.ShiftL3)
	assert.Contains(t, rules(violations), RuleClosingToOpening)
}

func TestCheckConstraints_ClosingToOpening_SkipsSunday(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-05", "a", model.ShiftL3) // Saturday
	ctx := newTestContext(s, regular("a"))

	violations := CheckConstraints(ctx, 7, "a", model.ShiftE1) // Monday
	assert.Contains(t, rules(violations), RuleClosingToOpening)
}

func TestCheckConstraints_ClosingToOpening_SkipsHoliday(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftL3)
	ctx := NewContext(s, []model.Staff{regular("a")}, []model.Holiday{{Date: "2025-04-08"}}, model.DefaultSettings(), 2025, time.April)

	violations := CheckConstraints(ctx, 9, "a", model.ShiftE1)
	assert.Contains(t, rules(violations), RuleClosingToOpening, "the holiday is skipped when finding the previous work day")
}

func TestCheckConstraints_ConsecutiveExtreme(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"))

	violations := CheckConstraints(ctx, 8, "a", model.ShiftE1)
	assert.Contains(t, rules(violations), RuleConsecutiveExtreme)

	// Early then late on adjacent days is allowed
	violations = CheckConstraints(ctx, 8, "a", model.ShiftL3)
	assert.False(t, HasHard(violations))
}

func TestCheckConstraints_Incompatibility(t *testing.T) {
	a := regular("a")
	a.Incompatible = []string{"b"}
	b := regular("b")

	s := model.NewSchedule()
	s.Set("2025-04-08", "b", model.ShiftL1)
	ctx := newTestContext(s, a, b)

	violations := CheckConstraints(ctx, 8, "a", model.ShiftL1)
	require.Contains(t, rules(violations), RuleIncompatibility)
	assert.True(t, HasHard(violations))

	assert.Empty(t, CheckConstraints(ctx, 8, "a", model.ShiftL2))
}

func TestCheckConstraints_Incompatibility_Symmetric(t *testing.T) {
	a := regular("a")
	b := regular("b")
	b.Incompatible = []string{"a"}

	s := model.NewSchedule()
	s.Set("2025-04-08", "b", model.ShiftM)
	ctx := newTestContext(s, a, b)

	assert.Contains(t, rules(CheckConstraints(ctx, 8, "a", model.ShiftM)), RuleIncompatibility)
}

func TestCheckConstraints_WeeklyExtremeCap(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"))

	violations := CheckConstraints(ctx, 9, "a", model.ShiftE1)
	assert.Equal(t, []RuleName{RuleWeeklyExtremeCap}, rules(violations))

	// The latest band has its own allowance
	assert.False(t, HasHard(CheckConstraints(ctx, 9, "a", model.ShiftL3)))
}

func TestCheckConstraints_WeeklyExtremeCap_NewWeek(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-10", "a", model.ShiftE1) // Thursday
	ctx := newTestContext(s, regular("a"))

	assert.Empty(t, CheckConstraints(ctx, 14, "a", model.ShiftE1)) // following Monday
}

func TestCheckConstraints_MinimumCount(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "a", model.ShiftE1)
	s.Set("2025-04-08", "b", model.ShiftE1)
	ctx := newTestContext(s, regular("a"), regular("b"), regular("c"))

	violations := CheckConstraints(ctx, 8, "a", model.ShiftM)
	assert.Equal(t, []RuleName{RuleMinimumCount}, rules(violations))

	// A third early starter frees one of them, leaving exactly the floor
	s.Set("2025-04-08", "c", model.ShiftE1)
	assert.Empty(t, CheckConstraints(ctx, 8, "a", model.ShiftM))

	// Below the floor already, nobody may leave
	s.Set("2025-04-08", "b", model.ShiftM)
	s.Set("2025-04-08", "c", model.ShiftM)
	violations = CheckConstraints(ctx, 8, "a", model.ShiftL1)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleMinimumCount, violations[0].Rule)
	assert.Contains(t, violations[0].Message, "with 0 of 2 required")
}

func TestCheckConstraints_EarlyShiftCapIsSoft(t *testing.T) {
	a := regular("a")
	a.EarlyShiftCap = intPtr(1)

	s := model.NewSchedule()
	s.Set("2025-04-01", "a", model.ShiftE2)
	ctx := newTestContext(s, a)

	violations := CheckConstraints(ctx, 8, "a", model.ShiftE1)
	require.Len(t, violations, 1)
	assert.Equal(t, RuleEarlyShiftCap, violations[0].Rule)
	assert.Equal(t, SeveritySoft, violations[0].Severity)
	assert.False(t, HasHard(violations))
}

func TestCheckConstraints_Fairness(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-01", "a", model.ShiftE1)
	s.Set("2025-04-15", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"), regular("b"), regular("c"))

	violations := CheckConstraints(ctx, 22, "a", model.ShiftE1)
	assert.Equal(t, []RuleName{RuleFairness}, rules(violations))

	// b is below the average and is not flagged
	assert.Empty(t, CheckConstraints(ctx, 22, "b", model.ShiftE1))
}

func TestCheckConstraints_HardBeforeSoft(t *testing.T) {
	a := regular("a")
	a.EarlyShiftCap = intPtr(0)

	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftL3)
	ctx := newTestContext(s, a)

	violations := CheckConstraints(ctx, 8, "a", model.ShiftE1)
	assert.Equal(t, []RuleName{RuleClosingToOpening, RuleEarlyShiftCap}, rules(violations))
}

func TestCheckConstraints_UnknownStaff(t *testing.T) {
	ctx := newTestContext(model.NewSchedule(), regular("a"))
	violations := CheckConstraints(ctx, 8, "ghost", model.ShiftE1)
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestCheck_Options(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"))

	assert.False(t, CanPlace(ctx, "2025-04-09", "a", model.ShiftE1, GeneratorPlacement))
	assert.True(t, CanPlace(ctx, "2025-04-09", "a", model.ShiftE1, CheckOptions{SkipWeeklyCap: true, SkipMinimumCount: true}))

	only := CheckOptions{Only: []RuleName{RuleClosingToOpening}}
	assert.True(t, CanPlace(ctx, "2025-04-08", "a", model.ShiftE1, only), "only the closing rule is evaluated")
}

func TestEvaluateCandidates_Ordering(t *testing.T) {
	b := regular("b")
	b.EarlyShiftCap = intPtr(0)
	partTimer := regular("f")
	partTimer.ShiftType = model.ShiftTypePartTime
	backup := regular("g")
	backup.ShiftType = model.ShiftTypeBackup

	s := model.NewSchedule()
	s.Set("2025-04-07", "a", model.ShiftL3)
	s.Set("2025-04-08", "d", model.ShiftPaidLeave)
	s.Set("2025-04-08", "e", model.ShiftE1)
	ctx := newTestContext(s, regular("a"), b, regular("c"), regular("d"), regular("e"), partTimer, backup)

	results := EvaluateCandidates(ctx, 8, model.ShiftE1)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.StaffID)
	}
	assert.Equal(t, []string{"c", "g", "b", "a"}, ids)

	assert.True(t, results[0].Assignable)
	assert.Empty(t, results[0].Violations)
	assert.True(t, results[2].Assignable)
	assert.Len(t, results[2].Violations, 1)
	assert.False(t, results[3].Assignable)
	assert.Equal(t, model.ShiftNone, results[3].CurrentShift)
}

func TestEvaluateCandidates_SkipsEveryLeaveCode(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "a", model.ShiftPaidLeave)
	s.Set("2025-04-08", "b", model.ShiftCompOff)
	s.Set("2025-04-08", "c", model.ShiftDayOff)
	s.Set("2025-04-08", "d", model.ShiftM)
	ctx := newTestContext(s, regular("a"), regular("b"), regular("c"), regular("d"), regular("e"))

	results := EvaluateCandidates(ctx, 8, model.ShiftE1)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.StaffID)
	}
	assert.Equal(t, []string{"d", "e"}, ids)
}

func TestFindShortages(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "a", model.ShiftE1)
	s.Set("2025-04-08", "b", model.ShiftL3)
	s.Set("2025-04-08", "c", model.ShiftL3)
	ctx := newTestContext(s, regular("a"), regular("b"), regular("c"))

	shortages := FindShortages(ctx, 8)
	require.Len(t, shortages, 1)
	assert.Equal(t, Shortage{Pattern: model.ShiftE1, Current: 1, Required: 2}, shortages[0])
	assert.Equal(t, 1, shortages[0].Deficit())
}

func TestFindSwapSuggestions(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "s1", model.ShiftM)
	s.Set("2025-04-08", "s2", model.ShiftM)
	s.Set("2025-04-08", "s3", model.ShiftL3)
	s.Set("2025-04-08", "s4", model.ShiftDayOff)
	ctx := newTestContext(s, regular("s1"), regular("s2"), regular("s3"), regular("s4"))

	suggestions := FindSwapSuggestions(ctx, 8, model.ShiftE1)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "s1", suggestions[0].StaffA.StaffID)
	assert.Equal(t, model.ShiftM, suggestions[0].StaffA.CurrentShift)
	assert.Equal(t, "s4", suggestions[0].StaffB.StaffID)
	assert.Contains(t, suggestions[0].Benefit, "Staff s1 moves M -> E1")
	assert.Equal(t, "s2", suggestions[1].StaffA.StaffID)

	// s3 is the only late closer, so it cannot leave L3
	for _, sg := range suggestions {
		assert.NotEqual(t, "s3", sg.StaffA.StaffID)
		assert.NotEqual(t, "s3", sg.StaffB.StaffID)
	}
}

func TestFindSwapSuggestions_CappedAndRepeatable(t *testing.T) {
	s := model.NewSchedule()
	staff := []model.Staff{}
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		s.Set("2025-04-08", id, model.ShiftM)
		staff = append(staff, regular(id))
	}
	staff = append(staff, regular("s6"))
	ctx := newTestContext(s, staff...)

	first := FindSwapSuggestions(ctx, 8, model.ShiftL3)
	assert.Len(t, first, MaxSwapSuggestions)

	second := FindSwapSuggestions(ctx, 8, model.ShiftL3)
	assert.Equal(t, first, second)

	// The live schedule is not modified by the hypothetical moves
	assert.Equal(t, model.ShiftM, s.Get("2025-04-08", "s1"))
}

func TestFindSwapSuggestions_UnassignedStaffAreDirectCandidates(t *testing.T) {
	s := model.NewSchedule()
	s.Set("2025-04-08", "s1", model.ShiftE1)
	ctx := newTestContext(s, regular("s1"), regular("s2"), regular("s3"))

	// s2 and s3 hold no band, so there is nothing to trade
	assert.Empty(t, FindSwapSuggestions(ctx, 8, model.ShiftE1))

	results := EvaluateCandidates(ctx, 8, model.ShiftE1)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Assignable, r.StaffID)
		assert.Equal(t, model.ShiftNone, r.CurrentShift)
	}
}

func TestFindSwapSuggestions_NotAWorkBand(t *testing.T) {
	ctx := newTestContext(model.NewSchedule(), regular("a"))
	assert.Empty(t, FindSwapSuggestions(ctx, 8, model.ShiftDayOff))
}

func TestCoverage_PartTimeCredit(t *testing.T) {
	p := regular("p")
	p.ShiftType = model.ShiftTypePartTime
	p.Position = model.PositionPartTime

	q := regular("q")
	q.ShiftType = model.ShiftTypePartTime
	q.Position = model.PositionPartTime

	ranges := model.TimeRangeSchedule{}
	ranges.Set("2025-04-08", "p", model.TimeRange{Start: "07:00", End: "11:00"})
	ranges.Set("2025-04-08", "q", model.TimeRange{Start: "15:00", End: "19:00", Patterns: []model.ShiftCode{model.ShiftL3}})

	s := model.NewSchedule()
	s.Set("2025-04-08", "a", model.ShiftE1)
	ctx := newTestContext(s, regular("a"), p, q).WithTimeRanges(ranges)

	assert.Equal(t, 1, PartTimeCredit(ctx, ranges, "2025-04-08", model.ShiftE1))
	assert.Equal(t, 1, PartTimeCredit(ctx, ranges, "2025-04-08", model.ShiftL1), "exactly two hours of overlap counts")
	assert.Equal(t, 0, PartTimeCredit(ctx, ranges, "2025-04-08", model.ShiftL2))
	assert.Equal(t, 1, PartTimeCredit(ctx, ranges, "2025-04-08", model.ShiftL3), "explicit credit list wins")
	assert.Equal(t, 2, EffectiveCount(ctx, ranges, "2025-04-08", model.ShiftE1))
	assert.Equal(t, 3, Headcount(ctx, ranges, "2025-04-08"))

	coverage := Coverage(ctx, "2025-04-08")
	var bands []model.ShiftCode
	for _, c := range coverage {
		bands = append(bands, c.Pattern)
	}
	assert.NotContains(t, bands, model.ShiftE1)
	assert.Contains(t, bands, model.ShiftL3)
	assert.Contains(t, bands, model.ShiftNone, "headcount of 3 is below 8")
}

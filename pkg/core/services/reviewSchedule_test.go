package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

func reviewStore() *mockStore {
	return &mockStore{
		staff: rosterRecords(4),
		entries: []db.ScheduleEntry{
			{Date: "2025-03-31", StaffID: "c01", Code: "L3"},
			{Date: "2025-04-01", StaffID: "c02", Code: "L3"},
			{Date: "2025-04-02", StaffID: "c03", Code: "PAID"},
		},
	}
}

func violatedRules(violations []constraints.Violation) []constraints.RuleName {
	var names []constraints.RuleName
	for _, v := range violations {
		names = append(names, v.Rule)
	}
	return names
}

func TestReviewEdit_BlocksClosingToOpening(t *testing.T) {
	review, err := ReviewEdit(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-02", "c02", "e1")
	require.NoError(t, err)

	assert.Equal(t, model.ShiftE1, review.Proposed)
	assert.Equal(t, model.ShiftNone, review.Current)
	assert.False(t, review.Allowed)
	assert.Contains(t, violatedRules(review.Violations), constraints.RuleClosingToOpening)
}

func TestReviewEdit_SeesPreviousMonth(t *testing.T) {
	review, err := ReviewEdit(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-01", "c01", "E1")
	require.NoError(t, err)

	assert.False(t, review.Allowed)
	assert.Contains(t, violatedRules(review.Violations), constraints.RuleClosingToOpening)
}

func TestReviewEdit_Allowed(t *testing.T) {
	review, err := ReviewEdit(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-02", "c04", "M")
	require.NoError(t, err)

	assert.True(t, review.Allowed)
	assert.False(t, constraints.HasHard(review.Violations))
}

func TestReviewEdit_LeaveCodeHasNoViolations(t *testing.T) {
	review, err := ReviewEdit(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-03", "c03", "PAID")
	require.NoError(t, err)

	assert.True(t, review.Allowed)
	assert.Empty(t, review.Violations)
}

func TestReviewEdit_LeaveRespectsMinimumCount(t *testing.T) {
	store := &mockStore{
		staff: rosterRecords(4),
		entries: []db.ScheduleEntry{
			{Date: "2025-04-08", StaffID: "c01", Code: "E1"},
			{Date: "2025-04-08", StaffID: "c02", Code: "E1"},
		},
	}

	for _, code := range []string{"OFF", "PAID", ""} {
		review, err := ReviewEdit(context.Background(), store, nil, zap.NewNop(), "2025-04-08", "c01", code)
		require.NoError(t, err)

		assert.Equal(t, model.ShiftE1, review.Current)
		assert.False(t, review.Allowed, "clearing c01 to %q", code)
		assert.Contains(t, violatedRules(review.Violations), constraints.RuleMinimumCount)
	}
}

func TestReviewEdit_InvalidInput(t *testing.T) {
	ctx := context.Background()

	_, err := ReviewEdit(ctx, reviewStore(), nil, zap.NewNop(), "2025-04-02", "nobody", "M")
	assert.ErrorContains(t, err, "unknown staff")

	_, err = ReviewEdit(ctx, reviewStore(), nil, zap.NewNop(), "2025-04-02", "c01", "X9")
	assert.ErrorContains(t, err, "invalid shift code")

	_, err = ReviewEdit(ctx, reviewStore(), nil, zap.NewNop(), "02/04/2025", "c01", "M")
	assert.ErrorContains(t, err, "invalid date")
}

func TestFindCandidates_SkipsLeave(t *testing.T) {
	candidates, err := FindCandidates(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-02", "E1")
	require.NoError(t, err)

	var ids []string
	for _, c := range candidates {
		ids = append(ids, c.StaffID)
	}
	assert.Len(t, ids, 4)
	assert.NotContains(t, ids, "c03")
	assert.NotContains(t, ids, "cook")

	// c02 closed the day before, so cannot be assigned and ranks last
	last := candidates[len(candidates)-1]
	assert.Equal(t, "c02", last.StaffID)
	assert.False(t, last.Assignable)
}

func TestFindCandidates_RejectsLeaveCode(t *testing.T) {
	_, err := FindCandidates(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-02", "PAID")
	assert.ErrorContains(t, err, "not a work band")
}

func TestListShortages_Weekday(t *testing.T) {
	report, err := ListShortages(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-01")
	require.NoError(t, err)

	assert.True(t, report.IsWeekday)
	assert.Equal(t, []constraints.Shortage{
		{Pattern: model.ShiftE1, Current: 0, Required: 2},
		{Pattern: model.ShiftL3, Current: 1, Required: 2},
	}, report.Extremes)

	var headcount *constraints.Shortage
	for i := range report.Coverage {
		if report.Coverage[i].Pattern == model.ShiftNone {
			headcount = &report.Coverage[i]
		}
	}
	require.NotNil(t, headcount)
	assert.Equal(t, 1, headcount.Current)
	assert.Equal(t, 8, headcount.Required)
}

func TestListShortages_Sunday(t *testing.T) {
	report, err := ListShortages(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-06")
	require.NoError(t, err)

	assert.False(t, report.IsWeekday)
	assert.Empty(t, report.Extremes)
	assert.Empty(t, report.Coverage)
}

func TestSuggestSwaps_MatchesEngine(t *testing.T) {
	store := &mockStore{
		staff: rosterRecords(4),
		entries: []db.ScheduleEntry{
			{Date: "2025-04-02", StaffID: "c01", Code: "M"},
			{Date: "2025-04-02", StaffID: "c02", Code: "L1"},
			{Date: "2025-04-02", StaffID: "c03", Code: "E2"},
		},
	}

	suggestions, err := SuggestSwaps(context.Background(), store, nil, zap.NewNop(), "2025-04-02", "E1")
	require.NoError(t, err)

	snapshot, err := LoadMonth(context.Background(), store, nil, zap.NewNop(), 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, constraints.FindSwapSuggestions(snapshot.Context(), 2, model.ShiftE1), suggestions)
}

func TestSuggestSwaps_InvalidCode(t *testing.T) {
	_, err := SuggestSwaps(context.Background(), reviewStore(), nil, zap.NewNop(), "2025-04-02", "??")
	assert.ErrorContains(t, err, "invalid shift code")
}

func TestMonthSnapshot_DateOutsideMonth(t *testing.T) {
	snapshot, err := LoadMonth(context.Background(), reviewStore(), nil, zap.NewNop(), 2025, 4)
	require.NoError(t, err)

	_, err = snapshot.ReviewEdit("2025-05-01", "c01", model.ShiftM)
	assert.ErrorContains(t, err, "outside 2025-04")

	_, err = snapshot.Shortages("2025-03-31")
	assert.ErrorContains(t, err, "outside 2025-04")
}

func TestParseBand(t *testing.T) {
	band, err := ParseBand(" l2 ")
	require.NoError(t, err)
	assert.Equal(t, model.ShiftL2, band)

	_, err = ParseBand("")
	assert.ErrorContains(t, err, "not a work band")
}

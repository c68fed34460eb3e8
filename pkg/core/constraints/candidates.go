package constraints

import (
	"sort"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// CandidateEvaluation is one staff member's fitness for a target shift
type CandidateEvaluation struct {
	StaffID      string          `json:"staff_id"`
	StaffName    string          `json:"staff_name"`
	CurrentShift model.ShiftCode `json:"current_shift"`
	Violations   []Violation     `json:"violations"`
	Assignable   bool            `json:"assignable"`
}

// EvaluateCandidates ranks main-shift staff for target on a day of the context's month.
//
// Staff on any leave code (PAID, COMP or OFF) and staff already on target are
// skipped. Assignable staff (soft violations only) come first ordered by
// violation count; staff with hard violations come last. Ties keep roster order.
func EvaluateCandidates(ctx *Context, day int, target model.ShiftCode) []CandidateEvaluation {
	date := ctx.DateKey(day)
	target = target.Normalize()

	results := []CandidateEvaluation{}
	for _, s := range ctx.Staff {
		if !s.IsMainShiftEligible() {
			continue
		}
		current := ctx.Schedule.Get(date, s.ID)
		if current.IsLeave() || current == target {
			continue
		}

		violations := Check(ctx, date, s.ID, target, CheckOptions{})
		results = append(results, CandidateEvaluation{
			StaffID:      s.ID,
			StaffName:    s.Name,
			CurrentShift: current,
			Violations:   violations,
			Assignable:   !HasHard(violations),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Assignable != results[j].Assignable {
			return results[i].Assignable
		}
		return len(results[i].Violations) < len(results[j].Violations)
	})
	return results
}

package constraints

import (
	"fmt"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// MaxSwapSuggestions caps FindSwapSuggestions results
const MaxSwapSuggestions = 3

// SwapParty is one side of a suggested swap
type SwapParty struct {
	StaffID      string          `json:"staff_id"`
	StaffName    string          `json:"staff_name"`
	CurrentShift model.ShiftCode `json:"current_shift"`
}

// SwapSuggestion moves StaffA onto the short band and StaffB onto StaffA's old band
type SwapSuggestion struct {
	StaffA  SwapParty `json:"staff_a"`
	StaffB  SwapParty `json:"staff_b"`
	Benefit string    `json:"benefit"`
}

// FindSwapSuggestions greedily looks for pairs (A, B) of main-shift staff where A,
// currently working another band, can legally take shortage and B can legally take
// A's band once A has moved. Each A yields at most one pair; the search stops after
// MaxSwapSuggestions. The pass is single and ordered by roster, so results are
// repeatable for the same input.
func FindSwapSuggestions(ctx *Context, day int, shortage model.ShiftCode) []SwapSuggestion {
	date := ctx.DateKey(day)
	shortage = shortage.Normalize()
	suggestions := []SwapSuggestion{}
	if !shortage.IsWorkBand() {
		return suggestions
	}

	var pool []model.Staff
	for _, s := range ctx.Staff {
		if s.IsMainShiftEligible() {
			pool = append(pool, s)
		}
	}

	for _, a := range pool {
		aShift := ctx.Schedule.Get(date, a.ID)
		// An unassigned A leaves no band for B to take; covering the shortage
		// with them is a direct assignment listed by EvaluateCandidates.
		if !aShift.IsWorkBand() || aShift == shortage {
			continue
		}
		if !CanPlace(ctx, date, a.ID, shortage, CheckOptions{SkipSoft: true}) {
			continue
		}

		moved := ctx.Schedule.Clone()
		moved.Set(date, a.ID, shortage)
		hypothetical := ctx.WithSchedule(moved)

		for _, b := range pool {
			if b.ID == a.ID {
				continue
			}
			bShift := ctx.Schedule.Get(date, b.ID)
			if bShift.IsProtected() || bShift == shortage || bShift == aShift {
				continue
			}
			if !CanPlace(hypothetical, date, b.ID, aShift, CheckOptions{SkipSoft: true}) {
				continue
			}

			suggestions = append(suggestions, SwapSuggestion{
				StaffA:  SwapParty{StaffID: a.ID, StaffName: a.Name, CurrentShift: aShift},
				StaffB:  SwapParty{StaffID: b.ID, StaffName: b.Name, CurrentShift: bShift},
				Benefit: swapBenefit(a, aShift, b, bShift, shortage),
			})
			break
		}

		if len(suggestions) >= MaxSwapSuggestions {
			break
		}
	}
	return suggestions
}

func swapBenefit(a model.Staff, aShift model.ShiftCode, b model.Staff, bShift model.ShiftCode, shortage model.ShiftCode) string {
	return fmt.Sprintf("%s moves %s -> %s to cover the shortage; %s moves %s -> %s",
		a.Name, aShift, shortage, b.Name, describe(bShift), aShift)
}

func describe(code model.ShiftCode) string {
	if code == model.ShiftNone {
		return "unassigned"
	}
	return string(code)
}

package constraints

import (
	"fmt"
	"slices"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// Proposal is a single (date, staff, candidate shift) change under evaluation
type Proposal struct {
	Date      string
	Staff     model.Staff
	Current   model.ShiftCode
	Candidate model.ShiftCode
}

// Rule is one staffing check.
// Evaluate returns the violations the proposal would introduce (empty if none).
type Rule interface {
	Name() RuleName
	Severity() Severity
	Evaluate(ctx *Context, p Proposal) []Violation
}

// hardRules and softRules run in this order
var (
	hardRules = []Rule{
		closingToOpeningRule{},
		consecutiveExtremeRule{},
		incompatibilityRule{},
		weeklyExtremeCapRule{},
		minimumCountRule{},
	}
	softRules = []Rule{
		earlyShiftCapRule{},
		fairnessRule{},
	}
)

func violation(r Rule, format string, args ...any) Violation {
	return Violation{Rule: r.Name(), Severity: r.Severity(), Message: fmt.Sprintf(format, args...)}
}

// closingToOpeningRule blocks the latest band followed by the earliest band on
// the next work day, checked from either side
type closingToOpeningRule struct{}

func (closingToOpeningRule) Name() RuleName     { return RuleClosingToOpening }
func (closingToOpeningRule) Severity() Severity { return SeverityHard }

func (r closingToOpeningRule) Evaluate(ctx *Context, p Proposal) []Violation {
	var out []Violation
	switch p.Candidate {
	case model.EarliestBand:
		prev := calendar.PrevWorkDay(p.Date, ctx.Holidays)
		if prev != "" && ctx.Schedule.Get(prev, p.Staff.ID) == model.LatestBand {
			out = append(out, violation(r, "%s closes on %s and cannot open on %s", p.Staff.Name, prev, p.Date))
		}
	case model.LatestBand:
		next := calendar.NextWorkDay(p.Date, ctx.Holidays)
		if next != "" && ctx.Schedule.Get(next, p.Staff.ID) == model.EarliestBand {
			out = append(out, violation(r, "%s opens on %s and cannot close on %s", p.Staff.Name, next, p.Date))
		}
	}
	return out
}

// consecutiveExtremeRule blocks the same extreme band on adjacent work days
type consecutiveExtremeRule struct{}

func (consecutiveExtremeRule) Name() RuleName     { return RuleConsecutiveExtreme }
func (consecutiveExtremeRule) Severity() Severity { return SeverityHard }

func (r consecutiveExtremeRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if !p.Candidate.IsExtreme() {
		return nil
	}
	var out []Violation
	for _, adjacent := range []string{
		calendar.PrevWorkDay(p.Date, ctx.Holidays),
		calendar.NextWorkDay(p.Date, ctx.Holidays),
	} {
		if adjacent != "" && ctx.Schedule.Get(adjacent, p.Staff.ID) == p.Candidate {
			out = append(out, violation(r, "%s already works %s on adjacent work day %s", p.Staff.Name, p.Candidate, adjacent))
		}
	}
	return out
}

// incompatibilityRule blocks sharing a band with an incompatible colleague
type incompatibilityRule struct{}

func (incompatibilityRule) Name() RuleName     { return RuleIncompatibility }
func (incompatibilityRule) Severity() Severity { return SeverityHard }

func (r incompatibilityRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if !p.Candidate.IsWorkBand() {
		return nil
	}
	var out []Violation
	for _, other := range ctx.Staff {
		if other.ID == p.Staff.ID {
			continue
		}
		if ctx.Schedule.Get(p.Date, other.ID) != p.Candidate {
			continue
		}
		if p.Staff.IsIncompatibleWith(other) {
			out = append(out, violation(r, "%s cannot share %s with %s", p.Staff.Name, p.Candidate, other.Name))
		}
	}
	return out
}

// weeklyExtremeCapRule limits each extreme band per Monday-Saturday week
type weeklyExtremeCapRule struct{}

func (weeklyExtremeCapRule) Name() RuleName     { return RuleWeeklyExtremeCap }
func (weeklyExtremeCapRule) Severity() Severity { return SeverityHard }

func (r weeklyExtremeCapRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if !p.Candidate.IsExtreme() {
		return nil
	}
	count := 0
	for _, date := range calendar.WeekDates(p.Date) {
		if date != p.Date && ctx.Schedule.Get(date, p.Staff.ID) == p.Candidate {
			count++
		}
	}
	if count >= ctx.Settings.WeeklyExtremeCap {
		return []Violation{violation(r, "%s already works %s %d time(s) this week", p.Staff.Name, p.Candidate, count)}
	}
	return nil
}

// minimumCountRule blocks moving someone off an extreme band that is at its floor
type minimumCountRule struct{}

func (minimumCountRule) Name() RuleName     { return RuleMinimumCount }
func (minimumCountRule) Severity() Severity { return SeverityHard }

func (r minimumCountRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if !p.Current.IsExtreme() || p.Candidate == p.Current {
		return nil
	}
	floor := ctx.Settings.Minimum(p.Current)
	count := CountOnDay(ctx.Schedule, p.Date, p.Current)
	// The floor is the required headcount: a band of floor+1 may drop to floor,
	// a band already at or below floor may not lose anyone.
	if count <= floor {
		return []Violation{violation(r, "moving %s would leave %s with %d of %d required", p.Staff.Name, p.Current, count-1, floor)}
	}
	return nil
}

// earlyShiftCapRule flags staff who have used up their monthly early-band allowance
type earlyShiftCapRule struct{}

func (earlyShiftCapRule) Name() RuleName     { return RuleEarlyShiftCap }
func (earlyShiftCapRule) Severity() Severity { return SeveritySoft }

func (r earlyShiftCapRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if p.Staff.EarlyShiftCap == nil || !slices.Contains(model.EarlyBands, p.Candidate) {
		return nil
	}
	limit := *p.Staff.EarlyShiftCap
	used := MonthlyCount(ctx, p.Staff.ID, p.Date, model.EarlyBands...)
	if used >= limit {
		return []Violation{violation(r, "%s has %d early shifts this month (cap %d)", p.Staff.Name, used, limit)}
	}
	return nil
}

// fairnessRule flags regular staff pulling ahead of the cohort on an extreme band
type fairnessRule struct{}

func (fairnessRule) Name() RuleName     { return RuleFairness }
func (fairnessRule) Severity() Severity { return SeveritySoft }

func (r fairnessRule) Evaluate(ctx *Context, p Proposal) []Violation {
	if p.Staff.ShiftType != model.ShiftTypeRegular || !p.Candidate.IsExtreme() {
		return nil
	}

	total, members := 0, 0
	for _, s := range ctx.Staff {
		if s.ShiftType != model.ShiftTypeRegular {
			continue
		}
		total += MonthlyCount(ctx, s.ID, "", p.Candidate)
		members++
	}
	if members == 0 {
		return nil
	}
	mean := float64(total) / float64(members)

	personal := MonthlyCount(ctx, p.Staff.ID, p.Date, p.Candidate) + 1
	if float64(personal)-mean > ctx.Settings.FairnessTolerance {
		return []Violation{violation(r, "%s would have %d x %s against a team average of %.1f", p.Staff.Name, personal, p.Candidate, mean)}
	}
	return nil
}

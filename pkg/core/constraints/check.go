package constraints

import (
	"slices"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// CheckOptions switches rules off for generator passes.
// The zero value runs every rule.
type CheckOptions struct {
	// SkipWeeklyCap relaxes the weekly extreme-band cap
	SkipWeeklyCap bool

	// SkipMinimumCount ignores minimum-count protection (only relevant to removals)
	SkipMinimumCount bool

	// SkipSoft omits soft rules
	SkipSoft bool

	// Only restricts evaluation to the named rules when non-empty
	Only []RuleName
}

func (o CheckOptions) enabled(r Rule) bool {
	if len(o.Only) > 0 && !slices.Contains(o.Only, r.Name()) {
		return false
	}
	switch r.Name() {
	case RuleWeeklyExtremeCap:
		return !o.SkipWeeklyCap
	case RuleMinimumCount:
		return !o.SkipMinimumCount
	}
	if r.Severity() == SeveritySoft {
		return !o.SkipSoft
	}
	return true
}

// GeneratorPlacement is the rule set used when the generator fills an empty cell:
// checks 1-4, no soft rules
var GeneratorPlacement = CheckOptions{SkipMinimumCount: true, SkipSoft: true}

// CheckConstraints evaluates putting staffID on candidate for a day of the
// context's month. Hard violations come first, then soft ones.
func CheckConstraints(ctx *Context, day int, staffID string, candidate model.ShiftCode) []Violation {
	return Check(ctx, ctx.DateKey(day), staffID, candidate, CheckOptions{})
}

// Check evaluates a proposal on date with the given options.
// Unknown staff produce no violations.
func Check(ctx *Context, date, staffID string, candidate model.ShiftCode, opts CheckOptions) []Violation {
	staff, ok := ctx.StaffByID(staffID)
	if !ok {
		return []Violation{}
	}

	p := Proposal{
		Date:      date,
		Staff:     staff,
		Current:   ctx.Schedule.Get(date, staffID),
		Candidate: candidate.Normalize(),
	}

	violations := []Violation{}
	for _, rules := range [][]Rule{hardRules, softRules} {
		for _, r := range rules {
			if !opts.enabled(r) {
				continue
			}
			violations = append(violations, r.Evaluate(ctx, p)...)
		}
	}
	return violations
}

// CanPlace reports whether a proposal passes every enabled hard rule
func CanPlace(ctx *Context, date, staffID string, candidate model.ShiftCode, opts CheckOptions) bool {
	return !HasHard(Check(ctx, date, staffID, candidate, opts))
}

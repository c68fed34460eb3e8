package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// ClosureRule is a recurring closure expressed as an RFC 5545 RRULE
type ClosureRule struct {
	Name  string
	RRule string
}

// ExpandClosureRules returns the holidays the rules produce within one month
func ExpandClosureRules(rules []ClosureRule, year int, month time.Month) ([]model.Holiday, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	var holidays []model.Holiday
	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse closure rule %d (%s): %w", i, rule.Name, err)
		}

		// Anchor the rule to the month so yearly rules resolve for any year
		r.DTStart(monthStart)

		for _, occurrence := range r.Between(monthStart, monthEnd, true) {
			holidays = append(holidays, model.Holiday{
				Date: occurrence.Format(Layout),
				Name: rule.Name,
			})
		}
	}
	return holidays, nil
}

// MergeHolidays combines holiday lists, dropping duplicate dates (first wins)
func MergeHolidays(lists ...[]model.Holiday) []model.Holiday {
	seen := make(map[string]bool)
	var out []model.Holiday
	for _, list := range lists {
		for _, h := range list {
			if seen[h.Date] {
				continue
			}
			seen[h.Date] = true
			out = append(out, h)
		}
	}
	return out
}

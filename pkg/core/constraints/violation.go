package constraints

// Severity tells whether a violation blocks an assignment
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// RuleName identifies a rule check
type RuleName string

const (
	RuleClosingToOpening   RuleName = "ClosingToOpening"
	RuleConsecutiveExtreme RuleName = "ConsecutiveExtreme"
	RuleIncompatibility    RuleName = "Incompatibility"
	RuleWeeklyExtremeCap   RuleName = "WeeklyExtremeCap"
	RuleMinimumCount       RuleName = "MinimumCount"
	RuleEarlyShiftCap      RuleName = "EarlyShiftCap"
	RuleFairness           RuleName = "Fairness"
)

// Violation is one rule broken by a proposed change
type Violation struct {
	Rule     RuleName `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// IsHard returns true for blocking violations
func (v Violation) IsHard() bool {
	return v.Severity == SeverityHard
}

// HasHard reports whether any violation blocks the assignment
func HasHard(violations []Violation) bool {
	for _, v := range violations {
		if v.IsHard() {
			return true
		}
	}
	return false
}

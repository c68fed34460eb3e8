package model

// Holiday is a calendar date flagged as a closure, independent of weekday
type Holiday struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Settings holds every staffing threshold used by generation and evaluation
type Settings struct {
	// SaturdayTarget is the Saturday headcount including part-time staff
	SaturdayTarget int `json:"saturday_target" yaml:"saturdayTarget"`

	// SaturdayShift is the band given to Saturday workers
	SaturdayShift ShiftCode `json:"saturday_shift" yaml:"saturdayShift"`

	// Patterns define each band's hours and daily minimum.
	// The minimum of the earliest and latest band is their floor.
	Patterns []PatternDefinition `json:"patterns,omitempty" yaml:"patterns,omitempty"`

	// DailyHeadcount is the minimum working headcount per weekday (cooks and director excluded)
	DailyHeadcount int `json:"daily_headcount" yaml:"dailyHeadcount"`

	// ChiefMonthlyCap limits chief fallback assignments per month
	ChiefMonthlyCap int `json:"chief_monthly_cap" yaml:"chiefMonthlyCap"`

	// PartTimeOverlapHours is the overlap a part-time range needs with a band to be credited
	PartTimeOverlapHours float64 `json:"part_time_overlap_hours" yaml:"partTimeOverlapHours"`

	// FairnessTolerance is how far above the cohort mean an extreme count may go
	FairnessTolerance float64 `json:"fairness_tolerance" yaml:"fairnessTolerance"`

	// WeeklyExtremeCap is how often each extreme band may be worked per Monday-Saturday week
	WeeklyExtremeCap int `json:"weekly_extreme_cap" yaml:"weeklyExtremeCap"`
}

// DefaultSettings returns the standard nursery configuration
func DefaultSettings() Settings {
	return Settings{
		SaturdayTarget:       3,
		SaturdayShift:        ShiftM,
		Patterns:             DefaultPatterns(),
		DailyHeadcount:       8,
		ChiefMonthlyCap:      8,
		PartTimeOverlapHours: 2,
		FairnessTolerance:    1,
		WeeklyExtremeCap:     1,
	}
}

// Normalized fills zero-valued fields from DefaultSettings
func (s Settings) Normalized() Settings {
	d := DefaultSettings()
	if s.SaturdayTarget <= 0 {
		s.SaturdayTarget = d.SaturdayTarget
	}
	if !s.SaturdayShift.IsWorkBand() {
		s.SaturdayShift = d.SaturdayShift
	}
	if len(s.Patterns) == 0 {
		s.Patterns = d.Patterns
	}
	if s.DailyHeadcount <= 0 {
		s.DailyHeadcount = d.DailyHeadcount
	}
	if s.ChiefMonthlyCap <= 0 {
		s.ChiefMonthlyCap = d.ChiefMonthlyCap
	}
	if s.PartTimeOverlapHours <= 0 {
		s.PartTimeOverlapHours = d.PartTimeOverlapHours
	}
	if s.FairnessTolerance <= 0 {
		s.FairnessTolerance = d.FairnessTolerance
	}
	if s.WeeklyExtremeCap <= 0 {
		s.WeeklyExtremeCap = d.WeeklyExtremeCap
	}
	return s
}

// Pattern returns the definition for a band
func (s Settings) Pattern(code ShiftCode) (PatternDefinition, bool) {
	for _, p := range s.Patterns {
		if p.Code == code {
			return p, true
		}
	}
	return PatternDefinition{}, false
}

// Minimum returns the configured daily minimum for a band (0 when undefined)
func (s Settings) Minimum(code ShiftCode) int {
	p, ok := s.Pattern(code)
	if !ok {
		return 0
	}
	return p.Minimum
}

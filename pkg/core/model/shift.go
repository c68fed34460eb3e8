package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ShiftCode is the value held in a single schedule cell
type ShiftCode string

// Work bands, earliest to latest
const (
	ShiftE1 ShiftCode = "E1"
	ShiftE2 ShiftCode = "E2"
	ShiftM  ShiftCode = "M"
	ShiftL1 ShiftCode = "L1"
	ShiftL2 ShiftCode = "L2"
	ShiftL3 ShiftCode = "L3"
)

// Reserved leave codes
const (
	ShiftCompOff   ShiftCode = "COMP"
	ShiftPaidLeave ShiftCode = "PAID"
	ShiftDayOff    ShiftCode = "OFF"
	ShiftNone      ShiftCode = ""
)

// WorkBands lists the six work bands in order
var WorkBands = []ShiftCode{ShiftE1, ShiftE2, ShiftM, ShiftL1, ShiftL2, ShiftL3}

// EarliestBand and LatestBand are the extreme bands
const (
	EarliestBand = ShiftE1
	LatestBand   = ShiftL3
	BaseBand     = ShiftM
)

// EarlyBands are counted together against a staff member's early shift cap
var EarlyBands = []ShiftCode{ShiftE1, ShiftE2}

// LateBands are the bands checked for room coverage in the afternoon
var LateBands = []ShiftCode{ShiftL1, ShiftL2, ShiftL3}

// KeyBands are the bands used for overall fairness ranking
var KeyBands = []ShiftCode{ShiftE1, ShiftM, ShiftL3}

// IsWorkBand returns true for one of the six work bands
func (c ShiftCode) IsWorkBand() bool {
	return slices.Contains(WorkBands, c)
}

// IsExtreme returns true for the earliest or latest band
func (c ShiftCode) IsExtreme() bool {
	return c == EarliestBand || c == LatestBand
}

// IsProtected returns true for manually authored leave that automation must never overwrite
func (c ShiftCode) IsProtected() bool {
	return c == ShiftCompOff || c == ShiftPaidLeave
}

// IsLeave returns true for any reserved leave/off code
func (c ShiftCode) IsLeave() bool {
	return c == ShiftCompOff || c == ShiftPaidLeave || c == ShiftDayOff
}

// IsValid returns true for a known code (empty included)
func (c ShiftCode) IsValid() bool {
	return c == ShiftNone || c.IsWorkBand() || c.IsLeave()
}

// Normalize maps unknown codes to empty
func (c ShiftCode) Normalize() ShiftCode {
	if !c.IsValid() {
		return ShiftNone
	}
	return c
}

// BandIndex returns the position of a band in WorkBands, or -1
func BandIndex(c ShiftCode) int {
	return slices.Index(WorkBands, c)
}

// NextBand returns the band after c in sequence, or empty at the end
func NextBand(c ShiftCode) ShiftCode {
	i := BandIndex(c)
	if i < 0 || i+1 >= len(WorkBands) {
		return ShiftNone
	}
	return WorkBands[i+1]
}

// ParseShiftCode parses a user-supplied code, case-insensitively
func ParseShiftCode(s string) (ShiftCode, error) {
	c := ShiftCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return ShiftNone, fmt.Errorf("unknown shift code %q", s)
	}
	return c, nil
}

// PatternDefinition describes a work band's hours and daily minimum headcount
type PatternDefinition struct {
	Code    ShiftCode `json:"code" yaml:"code" validate:"required"`
	Start   string    `json:"start" yaml:"start" validate:"required"`
	End     string    `json:"end" yaml:"end" validate:"required"`
	Minimum int       `json:"minimum" yaml:"minimum" validate:"min=0"`
}

// Window returns the band's start and end as offsets from midnight
func (p PatternDefinition) Window() (time.Duration, time.Duration, error) {
	start, err := ParseClock(p.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(p.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DefaultPatterns are the standard nursery bands
func DefaultPatterns() []PatternDefinition {
	return []PatternDefinition{
		{Code: ShiftE1, Start: "07:00", End: "16:00", Minimum: 2},
		{Code: ShiftE2, Start: "07:30", End: "16:30", Minimum: 1},
		{Code: ShiftM, Start: "08:30", End: "17:30", Minimum: 1},
		{Code: ShiftL1, Start: "09:00", End: "18:00", Minimum: 1},
		{Code: ShiftL2, Start: "09:30", End: "18:30", Minimum: 1},
		{Code: ShiftL3, Start: "10:00", End: "19:00", Minimum: 2},
	}
}

// ParseClock parses "HH:MM" into an offset from midnight
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

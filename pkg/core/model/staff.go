package model

import "slices"

// Position is the staff member's job category
type Position string

const (
	PositionDirector  Position = "director"
	PositionChief     Position = "chief"
	PositionCaregiver Position = "caregiver"
	PositionPartTime  Position = "part_time"
	PositionCook      Position = "cook"
)

// ShiftType determines which generation phases a staff member takes part in
type ShiftType string

const (
	ShiftTypeRegular  ShiftType = "regular"
	ShiftTypePartTime ShiftType = "part_time"
	ShiftTypeBackup   ShiftType = "backup"
	ShiftTypeCooking  ShiftType = "cooking"
	ShiftTypeNoShift  ShiftType = "no_shift"
)

// Role is the room a staff member is attached to
type Role string

const (
	RoleInfant  Role = "infant"
	RoleToddler Role = "toddler"
	RoleFree    Role = "free"
	RoleCooking Role = "cooking"
	RoleNone    Role = "none"
)

// Staff represents a member of the facility roster
type Staff struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Position  Position  `json:"position" yaml:"position"`
	ShiftType ShiftType `json:"shift_type" yaml:"shiftType"`
	Qualified bool      `json:"qualified" yaml:"qualified"`
	Role      Role      `json:"role" yaml:"role"`

	// Incompatible lists staff IDs this member must not share a band with
	Incompatible []string `json:"incompatible,omitempty" yaml:"incompatible,omitempty"`

	// EarlyShiftCap limits the monthly count of early-band shifts (nil = uncapped)
	EarlyShiftCap *int `json:"early_shift_cap,omitempty" yaml:"earlyShiftCap,omitempty"`

	// SaturdayOnly marks staff who only work Saturdays
	SaturdayOnly bool `json:"saturday_only" yaml:"saturdayOnly"`
}

// IsIncompatibleWith reports whether either side lists the other as incompatible
func (s Staff) IsIncompatibleWith(other Staff) bool {
	return slices.Contains(s.Incompatible, other.ID) || slices.Contains(other.Incompatible, s.ID)
}

// IsPartTime returns true for staff whose cells are only written manually
func (s Staff) IsPartTime() bool {
	return s.ShiftType == ShiftTypePartTime
}

// IsMainShiftEligible returns true for staff who can cover main-shift work
// (standard roster and backup staff)
func (s Staff) IsMainShiftEligible() bool {
	return s.ShiftType == ShiftTypeRegular || s.ShiftType == ShiftTypeBackup
}

// IsStandard returns true for standard-roster staff the generator assigns freely.
// The chief and director are held out of the standard pool.
func (s Staff) IsStandard() bool {
	return s.ShiftType == ShiftTypeRegular && s.Position != PositionChief && s.Position != PositionDirector
}

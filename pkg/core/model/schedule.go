package model

import (
	"encoding/json"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Schedule maps date (YYYY-MM-DD) to staff ID to shift code.
//
// Iteration order is fixed: ascending date, then roster order, then
// lexical order for IDs not on the roster. Empty cells are not stored.
type Schedule struct {
	cells  map[string]map[string]ShiftCode
	roster map[string]int
	order  []string
}

// Cell is a single non-empty schedule entry
type Cell struct {
	Date    string
	StaffID string
	Code    ShiftCode
}

// NewSchedule creates an empty schedule iterating staff in the given roster order
func NewSchedule(roster ...string) *Schedule {
	s := &Schedule{cells: make(map[string]map[string]ShiftCode)}
	s.SetRoster(roster...)
	return s
}

// SetRoster replaces the staff iteration order
func (s *Schedule) SetRoster(roster ...string) {
	s.order = slices.Clone(roster)
	s.roster = make(map[string]int, len(roster))
	for i, id := range roster {
		if _, seen := s.roster[id]; !seen {
			s.roster[id] = i
		}
	}
}

func (s *Schedule) ensure() {
	if s.cells == nil {
		s.cells = make(map[string]map[string]ShiftCode)
	}
}

// Get returns the code in a cell (empty when unassigned)
func (s *Schedule) Get(date, staffID string) ShiftCode {
	if s == nil {
		return ShiftNone
	}
	return s.cells[date][staffID]
}

// Set writes a cell; setting the empty code clears it
func (s *Schedule) Set(date, staffID string, code ShiftCode) {
	if code == ShiftNone {
		s.Clear(date, staffID)
		return
	}
	s.ensure()
	day, ok := s.cells[date]
	if !ok {
		day = make(map[string]ShiftCode)
		s.cells[date] = day
	}
	day[staffID] = code
}

// Clear empties a cell
func (s *Schedule) Clear(date, staffID string) {
	day, ok := s.cells[date]
	if !ok {
		return
	}
	delete(day, staffID)
	if len(day) == 0 {
		delete(s.cells, date)
	}
}

// Dates returns every date holding at least one cell, ascending
func (s *Schedule) Dates() []string {
	if s == nil {
		return nil
	}
	dates := make([]string, 0, len(s.cells))
	for d := range s.cells {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// StaffIDs returns the staff holding a cell on date, in roster order
func (s *Schedule) StaffIDs(date string) []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.cells[date]))
	for id := range s.cells[date] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, okI := s.roster[ids[i]]
		rj, okJ := s.roster[ids[j]]
		switch {
		case okI && okJ:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// Cells returns every non-empty cell in iteration order
func (s *Schedule) Cells() []Cell {
	var out []Cell
	for _, d := range s.Dates() {
		for _, id := range s.StaffIDs(d) {
			out = append(out, Cell{Date: d, StaffID: id, Code: s.cells[d][id]})
		}
	}
	return out
}

// Len returns the number of non-empty cells
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, day := range s.cells {
		n += len(day)
	}
	return n
}

// Clone returns a deep copy
func (s *Schedule) Clone() *Schedule {
	c := NewSchedule(s.rosterOrder()...)
	if s == nil {
		return c
	}
	for d, day := range s.cells {
		for id, code := range day {
			c.Set(d, id, code)
		}
	}
	return c
}

// Restrict returns a copy holding only the given dates
func (s *Schedule) Restrict(dates []string) *Schedule {
	c := NewSchedule(s.rosterOrder()...)
	if s == nil {
		return c
	}
	for _, d := range dates {
		for id, code := range s.cells[d] {
			c.Set(d, id, code)
		}
	}
	return c
}

func (s *Schedule) rosterOrder() []string {
	if s == nil {
		return nil
	}
	return s.order
}

// ToMap returns the interchange shape date -> staff -> code
func (s *Schedule) ToMap() map[string]map[string]string {
	out := make(map[string]map[string]string)
	if s == nil {
		return out
	}
	for d, day := range s.cells {
		m := make(map[string]string, len(day))
		for id, code := range day {
			m[id] = string(code)
		}
		out[d] = m
	}
	return out
}

// ScheduleFromMap builds a schedule from the interchange shape.
// Codes are matched case-insensitively; unknown codes leave the cell empty.
func ScheduleFromMap(m map[string]map[string]string, roster ...string) *Schedule {
	s := NewSchedule(roster...)
	for d, day := range m {
		for id, raw := range day {
			code, err := ParseShiftCode(raw)
			if err != nil {
				continue
			}
			s.Set(d, id, code)
		}
	}
	return s
}

func (s *Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var m map[string]map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = *ScheduleFromMap(m, s.order...)
	return nil
}

func (s *Schedule) MarshalYAML() (interface{}, error) {
	return s.ToMap(), nil
}

func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	var m map[string]map[string]string
	if err := value.Decode(&m); err != nil {
		return err
	}
	*s = *ScheduleFromMap(m, s.order...)
	return nil
}

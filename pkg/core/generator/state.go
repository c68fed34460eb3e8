package generator

import (
	"math/rand/v2"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// RunState is the private working state of one generation run.
// Every phase reads and writes it; nothing outside the run shares it.
type RunState struct {
	Year     int
	Month    time.Month
	Dates    []string
	Staff    []model.Staff
	Holidays []model.Holiday
	Settings model.Settings

	// Schedule is the working copy, seeded from the existing schedule
	Schedule   *model.Schedule
	TimeRanges model.TimeRangeSchedule

	// Checks reads from Schedule, so rule checks always see the current state
	Checks *constraints.Context

	Rand   *rand.Rand
	Logger *zap.Logger

	ChiefID    string
	DirectorID string

	inMonth          map[string]bool
	saturdayCounts   map[string]int
	chiefAssignments int
}

// NewRunState seeds the working schedule from cfg.Existing.
//
// Within the month only paid leave, compensatory days and part-time cells are
// carried over; everything else is regenerated. Cells outside the month are
// copied as-is so adjacency checks can see the neighbouring months.
// Unknown staff and unknown codes are dropped.
func NewRunState(cfg GenerationConfig) *RunState {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := cfg.Rand
	if r == nil {
		now := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(now, now>>1))
	}
	ranges := cfg.TimeRanges
	if ranges == nil {
		ranges = model.TimeRangeSchedule{}
	}

	roster := make([]string, 0, len(cfg.Staff))
	byID := make(map[string]model.Staff, len(cfg.Staff))
	for _, s := range cfg.Staff {
		roster = append(roster, s.ID)
		byID[s.ID] = s
	}

	st := &RunState{
		Year:           cfg.Year,
		Month:          cfg.Month,
		Dates:          calendar.MonthDates(cfg.Year, cfg.Month),
		Staff:          cfg.Staff,
		Holidays:       cfg.Holidays,
		Settings:       cfg.Settings.Normalized(),
		Schedule:       model.NewSchedule(roster...),
		TimeRanges:     ranges,
		Rand:           r,
		Logger:         logger,
		inMonth:        make(map[string]bool),
		saturdayCounts: make(map[string]int),
	}
	for _, d := range st.Dates {
		st.inMonth[d] = true
	}

	for _, c := range cfg.Existing.Cells() {
		s, ok := byID[c.StaffID]
		if !ok {
			continue
		}
		code := c.Code.Normalize()
		if code == model.ShiftNone {
			continue
		}
		if !st.inMonth[c.Date] || s.IsPartTime() || code.IsProtected() {
			st.Schedule.Set(c.Date, c.StaffID, code)
		}
	}

	for _, s := range cfg.Staff {
		switch {
		case s.Position == model.PositionChief && st.ChiefID == "":
			st.ChiefID = s.ID
		case s.Position == model.PositionDirector && st.DirectorID == "":
			st.DirectorID = s.ID
		}
	}

	st.Checks = constraints.NewContext(st.Schedule, cfg.Staff, cfg.Holidays, st.Settings, cfg.Year, cfg.Month).
		WithTimeRanges(ranges)
	return st
}

// assign writes a cell unless it holds protected leave.
// Returns false when the cell was left alone.
func (st *RunState) assign(date, staffID string, code model.ShiftCode) bool {
	if st.Schedule.Get(date, staffID).IsProtected() {
		return false
	}
	st.Schedule.Set(date, staffID, code)
	return true
}

func (st *RunState) isEmpty(date, staffID string) bool {
	return st.Schedule.Get(date, staffID) == model.ShiftNone
}

func (st *RunState) canPlace(date, staffID string, code model.ShiftCode, opts constraints.CheckOptions) bool {
	return constraints.CanPlace(st.Checks, date, staffID, code, opts)
}

// count is the effective count of a band, part-time credit included
func (st *RunState) count(date string, code model.ShiftCode) int {
	return constraints.EffectiveCount(st.Checks, st.TimeRanges, date, code)
}

func (st *RunState) headcount(date string) int {
	return constraints.Headcount(st.Checks, st.TimeRanges, date)
}

func (st *RunState) monthly(staffID string, codes ...model.ShiftCode) int {
	return constraints.MonthlyCount(st.Checks, staffID, "", codes...)
}

// weekdayPool returns standard staff available for weekday work that have no cell on date
func (st *RunState) weekdayPool(date string) []model.Staff {
	var pool []model.Staff
	for _, s := range st.Staff {
		if s.IsStandard() && !s.SaturdayOnly && st.isEmpty(date, s.ID) {
			pool = append(pool, s)
		}
	}
	return pool
}

// rankByBand orders staff by how often they have worked band this month,
// then by their combined earliest, base and latest count. An empty band
// ranks by the combined count alone.
func (st *RunState) rankByBand(pool []model.Staff, band model.ShiftCode) []model.Staff {
	ranked := make([]model.Staff, len(pool))
	copy(ranked, pool)

	bandCounts := make(map[string]int, len(ranked))
	keyCounts := make(map[string]int, len(ranked))
	for _, s := range ranked {
		if band.IsWorkBand() {
			bandCounts[s.ID] = st.monthly(s.ID, band)
		}
		keyCounts[s.ID] = st.monthly(s.ID, model.KeyBands...)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].ID, ranked[j].ID
		if bandCounts[a] != bandCounts[b] {
			return bandCounts[a] < bandCounts[b]
		}
		return keyCounts[a] < keyCounts[b]
	})
	return ranked
}

// placeBase puts a staff member on the base band, stepping to later bands
// while the placement clashes with an incompatible colleague
func (st *RunState) placeBase(date, staffID string) bool {
	onlyIncompatibility := constraints.CheckOptions{Only: []constraints.RuleName{constraints.RuleIncompatibility}}
	for code := model.BaseBand; code != model.ShiftNone; code = model.NextBand(code) {
		if st.canPlace(date, staffID, code, onlyIncompatibility) {
			return st.assign(date, staffID, code)
		}
	}
	return false
}

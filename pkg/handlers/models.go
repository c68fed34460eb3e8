package handlers

import (
	"time"

	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

// SnapshotInput is the data every request is evaluated against.
// Requests are self-contained; nothing is read from storage.
type SnapshotInput struct {
	Staff      []model.Staff                `json:"staff" binding:"required,min=1"`
	Holidays   []model.Holiday              `json:"holidays"`
	Settings   *model.Settings              `json:"settings"`
	Schedule   map[string]map[string]string `json:"schedule"`
	TimeRanges model.TimeRangeSchedule      `json:"time_ranges"`
	Year       int                          `json:"year" binding:"required,min=1"`
	Month      int                          `json:"month" binding:"required,min=1,max=12"`
}

// GenerateRequest asks for a month to be generated
type GenerateRequest struct {
	SnapshotInput
	// Seed fixes the tie-break order; omitted picks one at random
	Seed *uint64 `json:"seed"`
}

// GenerateResponse is the generated month
type GenerateResponse struct {
	Seed       uint64                  `json:"seed"`
	Schedule   *model.Schedule         `json:"schedule"`
	Shortfalls []services.DayShortfall `json:"shortfalls"`
}

// CheckRequest proposes one cell
type CheckRequest struct {
	SnapshotInput
	Date    string `json:"date" binding:"required"`
	StaffID string `json:"staff_id" binding:"required"`
	Code    string `json:"code"`
}

// CandidatesRequest asks who could take a band
type CandidatesRequest struct {
	SnapshotInput
	Date    string `json:"date" binding:"required"`
	Pattern string `json:"pattern" binding:"required"`
}

// CandidatesResponse lists candidates best first
type CandidatesResponse struct {
	Date       string                            `json:"date"`
	Pattern    model.ShiftCode                   `json:"pattern"`
	Candidates []constraints.CandidateEvaluation `json:"candidates"`
}

// ShortagesRequest asks for a day's shortages
type ShortagesRequest struct {
	SnapshotInput
	Date string `json:"date" binding:"required"`
}

// SwapsRequest asks for swaps covering a shortage
type SwapsRequest struct {
	SnapshotInput
	Date     string `json:"date" binding:"required"`
	Shortage string `json:"shortage" binding:"required"`
}

// SwapsResponse lists swap suggestions
type SwapsResponse struct {
	Date        string                       `json:"date"`
	Shortage    model.ShiftCode              `json:"shortage"`
	Suggestions []constraints.SwapSuggestion `json:"suggestions"`
}

// toSnapshot converts the request data. Unknown codes are read as empty.
func (in SnapshotInput) toSnapshot() *services.MonthSnapshot {
	ids := make([]string, 0, len(in.Staff))
	for _, s := range in.Staff {
		ids = append(ids, s.ID)
	}

	schedule := model.NewSchedule(ids...)
	for date, day := range in.Schedule {
		for id, code := range day {
			schedule.Set(date, id, model.ShiftCode(code).Normalize())
		}
	}

	settings := model.DefaultSettings()
	if in.Settings != nil {
		settings = in.Settings.Normalized()
	}

	ranges := in.TimeRanges
	if ranges == nil {
		ranges = model.TimeRangeSchedule{}
	}

	return &services.MonthSnapshot{
		Year:       in.Year,
		Month:      time.Month(in.Month),
		Staff:      in.Staff,
		Holidays:   in.Holidays,
		Settings:   settings,
		Schedule:   schedule,
		TimeRanges: ranges,
	}
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/internal/config"
	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// EditReview is the outcome of checking one proposed cell
type EditReview struct {
	Date       string                  `json:"date"`
	StaffID    string                  `json:"staff_id"`
	Current    model.ShiftCode         `json:"current"`
	Proposed   model.ShiftCode         `json:"proposed"`
	Violations []constraints.Violation `json:"violations"`
	Allowed    bool                    `json:"allowed"`
}

// ShortageReport holds the extreme-band shortages of a day and its full coverage gaps
type ShortageReport struct {
	Date      string                 `json:"date"`
	Extremes  []constraints.Shortage `json:"extremes"`
	Coverage  []constraints.Shortage `json:"coverage"`
	IsWeekday bool                   `json:"is_weekday"`
}

// ParseCode parses a user-supplied shift code
func ParseCode(code string) (model.ShiftCode, error) {
	c, err := model.ParseShiftCode(code)
	if err != nil {
		return model.ShiftNone, fmt.Errorf("invalid shift code %q: %w", code, err)
	}
	return c, nil
}

// ParseBand parses a user-supplied code that must name a work band
func ParseBand(code string) (model.ShiftCode, error) {
	band, err := ParseCode(code)
	if err != nil {
		return model.ShiftNone, err
	}
	if !band.IsWorkBand() {
		return model.ShiftNone, fmt.Errorf("%q is not a work band", code)
	}
	return band, nil
}

// dayOf returns the day of month of date, which must fall in the snapshot's month
func (m *MonthSnapshot) dayOf(date string) (int, error) {
	t, err := calendar.ParseDateKey(date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if t.Year() != m.Year || t.Month() != m.Month {
		return 0, fmt.Errorf("date %s is outside %d-%02d", date, m.Year, m.Month)
	}
	return t.Day(), nil
}

// ReviewEdit checks placing code in a staff member's cell.
// Leave codes and the empty code are checked too, since clearing someone off an
// extreme band can breach its minimum.
func (m *MonthSnapshot) ReviewEdit(date, staffID string, proposed model.ShiftCode) (*EditReview, error) {
	day, err := m.dayOf(date)
	if err != nil {
		return nil, err
	}

	checks := m.Context()
	if _, ok := checks.StaffByID(staffID); !ok {
		return nil, fmt.Errorf("unknown staff %q", staffID)
	}

	violations := constraints.CheckConstraints(checks, day, staffID, proposed)

	return &EditReview{
		Date:       date,
		StaffID:    staffID,
		Current:    m.Schedule.Get(date, staffID),
		Proposed:   proposed,
		Violations: violations,
		Allowed:    !constraints.HasHard(violations),
	}, nil
}

// Candidates ranks who could take band on date, best first
func (m *MonthSnapshot) Candidates(date string, band model.ShiftCode) ([]constraints.CandidateEvaluation, error) {
	day, err := m.dayOf(date)
	if err != nil {
		return nil, err
	}
	return constraints.EvaluateCandidates(m.Context(), day, band), nil
}

// Shortages reports the understaffed bands on date
func (m *MonthSnapshot) Shortages(date string) (*ShortageReport, error) {
	day, err := m.dayOf(date)
	if err != nil {
		return nil, err
	}

	report := &ShortageReport{
		Date:      date,
		Extremes:  []constraints.Shortage{},
		Coverage:  []constraints.Shortage{},
		IsWeekday: calendar.IsWeekday(date, m.Holidays),
	}
	// Weekend and holiday staffing has no band floors
	if report.IsWeekday {
		checks := m.Context()
		report.Extremes = constraints.FindShortages(checks, day)
		report.Coverage = constraints.Coverage(checks, date)
	}
	return report, nil
}

// Swaps proposes pairs of staff who could trade bands to cover shortage on date
func (m *MonthSnapshot) Swaps(date string, shortage model.ShiftCode) ([]constraints.SwapSuggestion, error) {
	day, err := m.dayOf(date)
	if err != nil {
		return nil, err
	}
	return constraints.FindSwapSuggestions(m.Context(), day, shortage), nil
}

// loadDay loads the month containing date
func loadDay(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, date string) (*MonthSnapshot, error) {
	t, err := calendar.ParseDateKey(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return LoadMonth(ctx, store, cfg, logger, t.Year(), t.Month())
}

// ReviewEdit checks a proposed cell against the stored schedule
func ReviewEdit(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, date, staffID, code string) (*EditReview, error) {
	proposed, err := ParseCode(code)
	if err != nil {
		return nil, err
	}

	snapshot, err := loadDay(ctx, store, cfg, logger, date)
	if err != nil {
		return nil, err
	}

	review, err := snapshot.ReviewEdit(date, staffID, proposed)
	if err != nil {
		return nil, err
	}

	logger.Debug("Reviewed edit",
		zap.String("date", date),
		zap.String("staff_id", staffID),
		zap.String("code", string(proposed)),
		zap.Int("violations", len(review.Violations)))
	return review, nil
}

// FindCandidates ranks who could take band on date against the stored schedule
func FindCandidates(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, date, band string) ([]constraints.CandidateEvaluation, error) {
	target, err := ParseBand(band)
	if err != nil {
		return nil, err
	}

	snapshot, err := loadDay(ctx, store, cfg, logger, date)
	if err != nil {
		return nil, err
	}

	candidates, err := snapshot.Candidates(date, target)
	if err != nil {
		return nil, err
	}

	logger.Debug("Evaluated candidates",
		zap.String("date", date),
		zap.String("band", string(target)),
		zap.Int("count", len(candidates)))
	return candidates, nil
}

// ListShortages reports the understaffed bands on date in the stored schedule
func ListShortages(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, date string) (*ShortageReport, error) {
	snapshot, err := loadDay(ctx, store, cfg, logger, date)
	if err != nil {
		return nil, err
	}

	report, err := snapshot.Shortages(date)
	if err != nil {
		return nil, err
	}

	logger.Debug("Listed shortages",
		zap.String("date", date),
		zap.Int("extremes", len(report.Extremes)),
		zap.Int("coverage", len(report.Coverage)))
	return report, nil
}

// SuggestSwaps proposes swaps covering shortage on date in the stored schedule
func SuggestSwaps(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, date, shortage string) ([]constraints.SwapSuggestion, error) {
	band, err := ParseCode(shortage)
	if err != nil {
		return nil, err
	}

	snapshot, err := loadDay(ctx, store, cfg, logger, date)
	if err != nil {
		return nil, err
	}

	suggestions, err := snapshot.Swaps(date, band)
	if err != nil {
		return nil, err
	}

	logger.Debug("Found swap suggestions",
		zap.String("date", date),
		zap.String("shortage", string(band)),
		zap.Int("count", len(suggestions)))
	return suggestions, nil
}

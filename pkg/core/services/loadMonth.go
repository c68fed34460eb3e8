package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/internal/config"
	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// adjacencyDays is how far either side of a month is loaded so rules can see
// the neighbouring weeks
const adjacencyDays = 7

// MonthSnapshot is everything stored about one month plus its neighbouring weeks
type MonthSnapshot struct {
	Year       int
	Month      time.Month
	Staff      []model.Staff
	Holidays   []model.Holiday
	Settings   model.Settings
	Schedule   *model.Schedule
	TimeRanges model.TimeRangeSchedule
}

// Context builds a constraint context over the snapshot
func (m *MonthSnapshot) Context() *constraints.Context {
	return constraints.NewContext(m.Schedule, m.Staff, m.Holidays, m.Settings, m.Year, m.Month).
		WithTimeRanges(m.TimeRanges)
}

// StaffIDs returns the roster order
func (m *MonthSnapshot) StaffIDs() []string {
	ids := make([]string, 0, len(m.Staff))
	for _, s := range m.Staff {
		ids = append(ids, s.ID)
	}
	return ids
}

// monthWindow returns the first and last date loaded for a month
func monthWindow(year int, month time.Month) (string, string) {
	dates := calendar.MonthDates(year, month)
	return calendar.AddDays(dates[0], -adjacencyDays), calendar.AddDays(dates[len(dates)-1], adjacencyDays)
}

// monthBounds returns the first and last date of a month
func monthBounds(year int, month time.Month) (string, string) {
	dates := calendar.MonthDates(year, month)
	return dates[0], dates[len(dates)-1]
}

// LoadMonth reads the month's snapshot from the store. Configured closure rules
// are expanded into holidays for the month and both neighbours. Stored settings
// take precedence over the configured ones.
func LoadMonth(ctx context.Context, store db.SnapshotReader, cfg *config.Config, logger *zap.Logger, year int, month time.Month) (*MonthSnapshot, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d-%02d", year, month)
	}

	from, to := monthWindow(year, month)
	logger.Debug("Loading month snapshot",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.String("from", from),
		zap.String("to", to))

	staffRecords, err := store.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	staff, err := db.ToStaff(staffRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to read staff: %w", err)
	}
	logger.Debug("Loaded staff", zap.Int("count", len(staff)))

	holidayRecords, err := store.GetHolidays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	holidays := db.ToHolidays(holidayRecords)

	if cfg != nil && len(cfg.Closures) > 0 {
		rules := cfg.ClosureRules()
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		for _, offset := range []int{-1, 0, 1} {
			m := first.AddDate(0, offset, 0)
			closures, err := calendar.ExpandClosureRules(rules, m.Year(), m.Month())
			if err != nil {
				return nil, fmt.Errorf("failed to expand closure rules: %w", err)
			}
			holidays = calendar.MergeHolidays(holidays, closures)
		}
	}
	logger.Debug("Loaded holidays", zap.Int("count", len(holidays)))

	settings, err := resolveSettings(ctx, store, cfg)
	if err != nil {
		return nil, err
	}

	snapshot := &MonthSnapshot{
		Year:     year,
		Month:    month,
		Staff:    staff,
		Holidays: holidays,
		Settings: settings,
	}

	entries, err := store.GetScheduleEntries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}
	snapshot.Schedule = db.ToSchedule(entries, snapshot.StaffIDs()...)
	logger.Debug("Loaded schedule entries", zap.Int("count", len(entries)))

	rangeEntries, err := store.GetTimeRanges(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get time ranges: %w", err)
	}
	snapshot.TimeRanges, err = db.ToTimeRanges(rangeEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to read time ranges: %w", err)
	}

	return snapshot, nil
}

// resolveSettings prefers stored settings, then configured ones, then defaults
func resolveSettings(ctx context.Context, store db.SnapshotReader, cfg *config.Config) (model.Settings, error) {
	record, err := store.GetSettings(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if record != nil {
		return record.Settings.Normalized(), nil
	}
	if cfg != nil {
		return cfg.ModelSettings(), nil
	}
	return model.DefaultSettings(), nil
}

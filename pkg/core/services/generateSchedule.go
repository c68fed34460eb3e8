package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/internal/config"
	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/constraints"
	"github.com/jakechorley/nursery-shifts/pkg/core/generator"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// GenerationStore reads a month and saves the generated schedule
type GenerationStore interface {
	db.SnapshotReader
	db.ScheduleWriter
}

// DayShortfall lists the bands still understaffed on one weekday
type DayShortfall struct {
	Date      string                 `json:"date"`
	Shortages []constraints.Shortage `json:"shortages"`
}

// GenerateResult contains the result of generating a month
type GenerateResult struct {
	Run        db.GenerationRun
	Schedule   *model.Schedule
	Shortfalls []DayShortfall
	Saved      bool
}

// GenerateSchedule builds a month's schedule from the stored snapshot and,
// unless dryRun is set, replaces the month's stored entries with it.
// The same seed and snapshot always produce the same schedule.
func GenerateSchedule(ctx context.Context, store GenerationStore, cfg *config.Config, logger *zap.Logger, year int, month time.Month, seed uint64, dryRun bool) (*GenerateResult, error) {
	snapshot, err := LoadMonth(ctx, store, cfg, logger, year, month)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Staff) == 0 {
		return nil, fmt.Errorf("no staff found")
	}

	logger.Debug("Generating schedule",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Uint64("seed", seed),
		zap.Bool("dry_run", dryRun))

	schedule := generator.Generate(generator.GenerationConfig{
		Staff:      snapshot.Staff,
		Holidays:   snapshot.Holidays,
		Year:       year,
		Month:      month,
		Settings:   snapshot.Settings,
		Existing:   snapshot.Schedule,
		TimeRanges: snapshot.TimeRanges,
		Rand:       rand.New(rand.NewPCG(seed, seed)),
		Logger:     logger,
	})

	shortfalls := Shortfalls(snapshot, schedule)
	shortfallCount := 0
	for _, d := range shortfalls {
		shortfallCount += len(d.Shortages)
	}

	result := &GenerateResult{
		Run: db.GenerationRun{
			ID:             uuid.New().String(),
			Year:           year,
			Month:          int(month),
			Seed:           seed,
			CellCount:      schedule.Len(),
			ShortfallCount: shortfallCount,
		},
		Schedule:   schedule,
		Shortfalls: shortfalls,
	}

	logger.Debug("Generated schedule",
		zap.Int("cells", result.Run.CellCount),
		zap.Int("shortfalls", shortfallCount))

	if dryRun {
		logger.Debug("Dry run, not saving schedule")
		return result, nil
	}

	from, to := monthBounds(year, month)
	if err := store.ReplaceScheduleEntries(ctx, from, to, db.ScheduleEntries(schedule)); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	if err := store.InsertGenerationRun(ctx, &result.Run); err != nil {
		return nil, fmt.Errorf("failed to record generation run: %w", err)
	}
	result.Saved = true

	logger.Info("Saved schedule",
		zap.String("run_id", result.Run.ID),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	return result, nil
}

// Shortfalls reports band and headcount coverage gaps on every weekday of the
// snapshot's month, reading schedule in place of the stored one
func Shortfalls(snapshot *MonthSnapshot, schedule *model.Schedule) []DayShortfall {
	checks := snapshot.Context().WithSchedule(schedule)

	var shortfalls []DayShortfall
	for _, date := range calendar.MonthDates(snapshot.Year, snapshot.Month) {
		if !calendar.IsWeekday(date, snapshot.Holidays) {
			continue
		}
		if shortages := constraints.Coverage(checks, date); len(shortages) > 0 {
			shortfalls = append(shortfalls, DayShortfall{Date: date, Shortages: shortages})
		}
	}
	return shortfalls
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// firstDate and lastDate span every date key a store can hold
const (
	firstDate = "0001-01-01"
	lastDate  = "9999-12-31"
)

// ImportResult counts what was copied
type ImportResult struct {
	Staff      int
	Holidays   int
	TimeRanges int
	Settings   bool
}

// ImportSnapshot copies reference data (staff, holidays, time ranges and
// settings) from src into dst. Schedule entries are not copied.
func ImportSnapshot(ctx context.Context, src db.SnapshotReader, dst db.Importer, logger *zap.Logger) (*ImportResult, error) {
	staff, err := src.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	// Reject bad positions and roles before anything is written
	if _, err := db.ToStaff(staff); err != nil {
		return nil, fmt.Errorf("invalid staff: %w", err)
	}

	holidays, err := src.GetHolidays(ctx, firstDate, lastDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}

	ranges, err := src.GetTimeRanges(ctx, firstDate, lastDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get time ranges: %w", err)
	}
	if _, err := db.ToTimeRanges(ranges); err != nil {
		return nil, fmt.Errorf("invalid time ranges: %w", err)
	}

	settings, err := src.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	logger.Debug("Importing snapshot",
		zap.Int("staff", len(staff)),
		zap.Int("holidays", len(holidays)),
		zap.Int("time_ranges", len(ranges)),
		zap.Bool("settings", settings != nil))

	if err := dst.UpsertStaff(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to import staff: %w", err)
	}
	if err := dst.UpsertHolidays(ctx, holidays); err != nil {
		return nil, fmt.Errorf("failed to import holidays: %w", err)
	}
	if err := dst.UpsertTimeRanges(ctx, ranges); err != nil {
		return nil, fmt.Errorf("failed to import time ranges: %w", err)
	}
	if settings != nil {
		if err := dst.SaveSettings(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to import settings: %w", err)
		}
	}

	return &ImportResult{
		Staff:      len(staff),
		Holidays:   len(holidays),
		TimeRanges: len(ranges),
		Settings:   settings != nil,
	}, nil
}

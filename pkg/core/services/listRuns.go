package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// RunLister reads recorded generation runs
type RunLister interface {
	GetGenerationRuns(ctx context.Context) ([]db.GenerationRun, error)
}

// ListRuns returns recorded generation runs newest first, optionally limited
// to one month. A zero year or month matches any.
func ListRuns(ctx context.Context, store RunLister, logger *zap.Logger, year, month int) ([]db.GenerationRun, error) {
	runs, err := store.GetGenerationRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation runs: %w", err)
	}

	filtered := make([]db.GenerationRun, 0, len(runs))
	for _, r := range runs {
		if year != 0 && r.Year != year {
			continue
		}
		if month != 0 && r.Month != month {
			continue
		}
		filtered = append(filtered, r)
	}

	logger.Debug("Listed generation runs", zap.Int("total", len(runs)), zap.Int("matched", len(filtered)))
	return filtered, nil
}

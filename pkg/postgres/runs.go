package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// InsertGenerationRun records a saved generation
func (d *DB) InsertGenerationRun(ctx context.Context, run *db.GenerationRun) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO generation_run (id, year, month, seed, cell_count, shortfall_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.Year, run.Month, int64(run.Seed), run.CellCount, run.ShortfallCount)
	if err != nil {
		return fmt.Errorf("failed to insert generation run: %w", err)
	}
	return nil
}

// GetGenerationRuns retrieves every generation run, newest first
func (d *DB) GetGenerationRuns(ctx context.Context) ([]db.GenerationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, year, month, seed, cell_count, shortfall_count, created_at
		FROM generation_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation runs: %w", err)
	}
	defer rows.Close()

	var runs []db.GenerationRun
	for rows.Next() {
		var r db.GenerationRun
		var seed int64
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &seed, &r.CellCount, &r.ShortfallCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		r.Seed = uint64(seed)
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation runs: %w", err)
	}

	return runs, nil
}

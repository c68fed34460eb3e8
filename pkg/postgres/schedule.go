package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// GetScheduleEntries retrieves schedule cells dated from..to inclusive
func (d *DB) GetScheduleEntries(ctx context.Context, from, to string) ([]db.ScheduleEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT to_char(work_date, 'YYYY-MM-DD'), staff_id, code
		FROM schedule_entry
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date, staff_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []db.ScheduleEntry
	for rows.Next() {
		var e db.ScheduleEntry
		if err := rows.Scan(&e.Date, &e.StaffID, &e.Code); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entries: %w", err)
	}

	return entries, nil
}

// ReplaceScheduleEntries swaps every cell dated from..to for entries in a single transaction
func (d *DB) ReplaceScheduleEntries(ctx context.Context, from, to string, entries []db.ScheduleEntry) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_entry WHERE work_date BETWEEN $1 AND $2`, from, to); err != nil {
		return fmt.Errorf("failed to clear schedule entries: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_entry (work_date, staff_id, code)
			VALUES ($1, $2, $3)
		`, e.Date, e.StaffID, e.Code)
		if err != nil {
			return fmt.Errorf("failed to insert schedule entry for %s on %s: %w", e.StaffID, e.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTimeRanges retrieves part-time intervals dated from..to inclusive
func (d *DB) GetTimeRanges(ctx context.Context, from, to string) ([]db.TimeRangeEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT to_char(work_date, 'YYYY-MM-DD'), staff_id, start_time, end_time, patterns
		FROM time_range
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date, staff_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query time ranges: %w", err)
	}
	defer rows.Close()

	var ranges []db.TimeRangeEntry
	for rows.Next() {
		var r db.TimeRangeEntry
		if err := rows.Scan(&r.Date, &r.StaffID, &r.Start, &r.End, &r.Patterns); err != nil {
			return nil, fmt.Errorf("failed to scan time range: %w", err)
		}
		ranges = append(ranges, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time ranges: %w", err)
	}

	return ranges, nil
}

// UpsertHolidays inserts or renames holidays
func (d *DB) UpsertHolidays(ctx context.Context, holidays []db.HolidayRecord) error {
	if len(holidays) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, h := range holidays {
		_, err := tx.Exec(ctx, `
			INSERT INTO holiday (holiday_date, name) VALUES ($1, $2)
			ON CONFLICT (holiday_date) DO UPDATE SET name = EXCLUDED.name
		`, h.Date, h.Name)
		if err != nil {
			return fmt.Errorf("failed to upsert holiday %s: %w", h.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpsertTimeRanges inserts or replaces part-time intervals
func (d *DB) UpsertTimeRanges(ctx context.Context, ranges []db.TimeRangeEntry) error {
	if len(ranges) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range ranges {
		patterns := r.Patterns
		if patterns == nil {
			patterns = []string{}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO time_range (work_date, staff_id, start_time, end_time, patterns)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (work_date, staff_id) DO UPDATE SET
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				patterns = EXCLUDED.patterns
		`, r.Date, r.StaffID, r.Start, r.End, patterns)
		if err != nil {
			return fmt.Errorf("failed to upsert time range for %s on %s: %w", r.StaffID, r.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// GetStaff retrieves the roster in display order
func (d *DB) GetStaff(ctx context.Context) ([]db.StaffRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, position, shift_type, qualified, role, incompatible, early_shift_cap, saturday_only, sort_order
		FROM staff
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var staff []db.StaffRecord
	for rows.Next() {
		var s db.StaffRecord
		if err := rows.Scan(&s.ID, &s.Name, &s.Position, &s.ShiftType, &s.Qualified, &s.Role,
			&s.Incompatible, &s.EarlyShiftCap, &s.SaturdayOnly, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

// UpsertStaff inserts or updates staff records in one transaction
func (d *DB) UpsertStaff(ctx context.Context, staff []db.StaffRecord) error {
	if len(staff) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range staff {
		incompatible := s.Incompatible
		if incompatible == nil {
			incompatible = []string{}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO staff (id, name, position, shift_type, qualified, role, incompatible, early_shift_cap, saturday_only, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				position = EXCLUDED.position,
				shift_type = EXCLUDED.shift_type,
				qualified = EXCLUDED.qualified,
				role = EXCLUDED.role,
				incompatible = EXCLUDED.incompatible,
				early_shift_cap = EXCLUDED.early_shift_cap,
				saturday_only = EXCLUDED.saturday_only,
				sort_order = EXCLUDED.sort_order
		`, s.ID, s.Name, s.Position, s.ShiftType, s.Qualified, s.Role, incompatible, s.EarlyShiftCap, s.SaturdayOnly, s.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to upsert staff %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetHolidays retrieves holidays dated from..to inclusive
func (d *DB) GetHolidays(ctx context.Context, from, to string) ([]db.HolidayRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT to_char(holiday_date, 'YYYY-MM-DD'), name
		FROM holiday
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []db.HolidayRecord
	for rows.Next() {
		var h db.HolidayRecord
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}

// GetSettings retrieves the stored thresholds, or nil when none are stored
func (d *DB) GetSettings(ctx context.Context) (*db.SettingsRecord, error) {
	var data []byte
	var updatedAt time.Time
	err := d.pool.QueryRow(ctx, `SELECT data, updated_at FROM settings WHERE id = 1`).Scan(&data, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	record := &db.SettingsRecord{UpdatedAt: updatedAt.UTC().Format(time.RFC3339)}
	if err := json.Unmarshal(data, &record.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return record, nil
}

// SaveSettings stores the thresholds, replacing any previous version
func (d *DB) SaveSettings(ctx context.Context, record *db.SettingsRecord) error {
	data, err := json.Marshal(record.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO settings (id, data, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, data)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

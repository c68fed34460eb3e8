package db

import "context"

// SnapshotReader reads everything needed to evaluate or generate a month
type SnapshotReader interface {
	GetStaff(ctx context.Context) ([]StaffRecord, error)
	GetHolidays(ctx context.Context, from, to string) ([]HolidayRecord, error)
	// GetSettings returns nil when no settings have been stored
	GetSettings(ctx context.Context) (*SettingsRecord, error)
	GetScheduleEntries(ctx context.Context, from, to string) ([]ScheduleEntry, error)
	GetTimeRanges(ctx context.Context, from, to string) ([]TimeRangeEntry, error)
}

// ScheduleWriter stores generated schedules
type ScheduleWriter interface {
	// ReplaceScheduleEntries deletes every entry dated from..to (inclusive) and inserts entries
	ReplaceScheduleEntries(ctx context.Context, from, to string, entries []ScheduleEntry) error
	InsertGenerationRun(ctx context.Context, run *GenerationRun) error
}

// Database defines the interface for all database operations.
// Both postgres.DB and filestore.Store implement this interface.
type Database interface {
	SnapshotReader
	ScheduleWriter
	GetGenerationRuns(ctx context.Context) ([]GenerationRun, error)
}

// Importer loads reference data into a store
type Importer interface {
	UpsertStaff(ctx context.Context, staff []StaffRecord) error
	UpsertHolidays(ctx context.Context, holidays []HolidayRecord) error
	SaveSettings(ctx context.Context, record *SettingsRecord) error
	UpsertTimeRanges(ctx context.Context, ranges []TimeRangeEntry) error
}

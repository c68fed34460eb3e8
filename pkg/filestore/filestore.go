// Package filestore keeps the whole nursery dataset in one YAML file, for
// offline use and for seeding a database.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/nursery-shifts/pkg/db"
)

// Snapshot is the file layout
type Snapshot struct {
	Staff          []db.StaffRecord    `yaml:"staff"`
	Holidays       []db.HolidayRecord  `yaml:"holidays,omitempty"`
	Settings       *db.SettingsRecord  `yaml:"settings,omitempty"`
	Schedule       []db.ScheduleEntry  `yaml:"schedule,omitempty"`
	TimeRanges     []db.TimeRangeEntry `yaml:"timeRanges,omitempty"`
	GenerationRuns []db.GenerationRun  `yaml:"generationRuns,omitempty"`
}

// Store implements db.Database on a YAML file. Every write saves the file.
type Store struct {
	path string

	mu   sync.Mutex
	data Snapshot
}

// Open reads the snapshot at path. A missing file starts an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if err := yaml.Unmarshal(content, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// save writes the snapshot; callers hold mu
func (s *Store) save() error {
	content, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func inRange(date, from, to string) bool {
	return date >= from && date <= to
}

// GetStaff returns the roster in display order
func (s *Store) GetStaff(ctx context.Context) ([]db.StaffRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := slices.Clone(s.data.Staff)
	sort.SliceStable(staff, func(i, j int) bool { return staff[i].SortOrder < staff[j].SortOrder })
	return staff, nil
}

// GetHolidays returns holidays dated from..to inclusive
func (s *Store) GetHolidays(ctx context.Context, from, to string) ([]db.HolidayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var holidays []db.HolidayRecord
	for _, h := range s.data.Holidays {
		if inRange(h.Date, from, to) {
			holidays = append(holidays, h)
		}
	}
	return holidays, nil
}

// GetSettings returns the stored thresholds, or nil
func (s *Store) GetSettings(ctx context.Context) (*db.SettingsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Settings == nil {
		return nil, nil
	}
	record := *s.data.Settings
	return &record, nil
}

// GetScheduleEntries returns cells dated from..to inclusive
func (s *Store) GetScheduleEntries(ctx context.Context, from, to string) ([]db.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []db.ScheduleEntry
	for _, e := range s.data.Schedule {
		if inRange(e.Date, from, to) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// GetTimeRanges returns part-time intervals dated from..to inclusive
func (s *Store) GetTimeRanges(ctx context.Context, from, to string) ([]db.TimeRangeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ranges []db.TimeRangeEntry
	for _, r := range s.data.TimeRanges {
		if inRange(r.Date, from, to) {
			ranges = append(ranges, r)
		}
	}
	return ranges, nil
}

// ReplaceScheduleEntries swaps every cell dated from..to for entries
func (s *Store) ReplaceScheduleEntries(ctx context.Context, from, to string, entries []db.ScheduleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]db.ScheduleEntry, 0, len(s.data.Schedule)+len(entries))
	for _, e := range s.data.Schedule {
		if !inRange(e.Date, from, to) {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entries...)
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })

	previous := s.data.Schedule
	s.data.Schedule = kept
	if err := s.save(); err != nil {
		s.data.Schedule = previous
		return err
	}
	return nil
}

// InsertGenerationRun records a saved generation
func (s *Store) InsertGenerationRun(ctx context.Context, run *db.GenerationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt == "" {
		run.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.data.GenerationRuns = append(s.data.GenerationRuns, *run)
	if err := s.save(); err != nil {
		s.data.GenerationRuns = s.data.GenerationRuns[:len(s.data.GenerationRuns)-1]
		return err
	}
	return nil
}

// GetGenerationRuns returns every generation run, newest first
func (s *Store) GetGenerationRuns(ctx context.Context) ([]db.GenerationRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := slices.Clone(s.data.GenerationRuns)
	slices.Reverse(runs)
	return runs, nil
}

// UpsertStaff adds or replaces staff records by ID
func (s *Store) UpsertStaff(ctx context.Context, staff []db.StaffRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range staff {
		i := slices.IndexFunc(s.data.Staff, func(e db.StaffRecord) bool { return e.ID == r.ID })
		if i >= 0 {
			s.data.Staff[i] = r
		} else {
			s.data.Staff = append(s.data.Staff, r)
		}
	}
	return s.save()
}

// UpsertHolidays adds or renames holidays by date
func (s *Store) UpsertHolidays(ctx context.Context, holidays []db.HolidayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range holidays {
		i := slices.IndexFunc(s.data.Holidays, func(e db.HolidayRecord) bool { return e.Date == h.Date })
		if i >= 0 {
			s.data.Holidays[i] = h
		} else {
			s.data.Holidays = append(s.data.Holidays, h)
		}
	}
	sort.SliceStable(s.data.Holidays, func(i, j int) bool { return s.data.Holidays[i].Date < s.data.Holidays[j].Date })
	return s.save()
}

// SaveSettings replaces the stored thresholds
func (s *Store) SaveSettings(ctx context.Context, record *db.SettingsRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	stored.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.data.Settings = &stored
	return s.save()
}

// UpsertTimeRanges adds or replaces part-time intervals by date and staff
func (s *Store) UpsertTimeRanges(ctx context.Context, ranges []db.TimeRangeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range ranges {
		i := slices.IndexFunc(s.data.TimeRanges, func(e db.TimeRangeEntry) bool {
			return e.Date == r.Date && e.StaffID == r.StaffID
		})
		if i >= 0 {
			s.data.TimeRanges[i] = r
		} else {
			s.data.TimeRanges = append(s.data.TimeRanges, r)
		}
	}
	return s.save()
}

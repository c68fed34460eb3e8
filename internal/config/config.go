package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/nursery-shifts/pkg/core/calendar"
	"github.com/jakechorley/nursery-shifts/pkg/core/model"
)

// Store backends
const (
	StorePostgres = "postgres"
	StoreFile     = "file"
)

// DatabaseURLEnv overrides databaseURL from the config file
const DatabaseURLEnv = "DATABASE_URL"

// ClosureRule is a recurring closure (e.g. "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=29,30,31")
type ClosureRule struct {
	Name  string `yaml:"name,omitempty"`
	RRule string `yaml:"rrule" validate:"required"`
}

// PatternConfig overrides one band's hours and minimum
type PatternConfig struct {
	Code    string `yaml:"code" validate:"required,oneof=E1 E2 M L1 L2 L3"`
	Start   string `yaml:"start" validate:"required"`
	End     string `yaml:"end" validate:"required"`
	Minimum int    `yaml:"minimum" validate:"min=0"`
}

// SettingsConfig holds staffing thresholds. Zero values fall back to defaults.
type SettingsConfig struct {
	SaturdayTarget       int             `yaml:"saturdayTarget,omitempty" validate:"min=0"`
	SaturdayShift        string          `yaml:"saturdayShift,omitempty" validate:"omitempty,oneof=E1 E2 M L1 L2 L3"`
	DailyHeadcount       int             `yaml:"dailyHeadcount,omitempty" validate:"min=0"`
	ChiefMonthlyCap      int             `yaml:"chiefMonthlyCap,omitempty" validate:"min=0"`
	PartTimeOverlapHours float64         `yaml:"partTimeOverlapHours,omitempty" validate:"min=0"`
	FairnessTolerance    float64         `yaml:"fairnessTolerance,omitempty" validate:"min=0"`
	WeeklyExtremeCap     int             `yaml:"weeklyExtremeCap,omitempty" validate:"min=0"`
	Patterns             []PatternConfig `yaml:"patterns,omitempty" validate:"dive"`
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Port int `yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
}

// Config represents the application configuration
type Config struct {
	Store        string         `yaml:"store" validate:"required,oneof=postgres file"`
	DatabaseURL  string         `yaml:"databaseURL,omitempty" validate:"required_if=Store postgres"`
	SnapshotPath string         `yaml:"snapshotPath,omitempty" validate:"required_if=Store file"`
	Closures     []ClosureRule  `yaml:"closures,omitempty" validate:"dive"`
	Settings     SettingsConfig `yaml:"settings,omitempty"`
	Server       ServerConfig   `yaml:"server,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads shift_config.<env>.yaml, falling back to shift_config.yaml.
// .env.<env> and .env are read first so DATABASE_URL can be kept out of the file.
func LoadWithEnv(env string) (*Config, error) {
	if err := loadDotEnv(env); err != nil {
		return nil, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, closure rule syntax and band hours
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, closure := range cfg.Closures {
		if _, err := rrule.StrToRRule(closure.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closures[%d]: %w", i, err)
		}
	}

	for i, p := range cfg.Settings.Patterns {
		def := model.PatternDefinition{Code: model.ShiftCode(p.Code), Start: p.Start, End: p.End, Minimum: p.Minimum}
		if _, _, err := def.Window(); err != nil {
			return fmt.Errorf("invalid hours in settings.patterns[%d]: %w", i, err)
		}
	}

	return nil
}

// ClosureRules converts the configured closures for calendar expansion
func (c *Config) ClosureRules() []calendar.ClosureRule {
	rules := make([]calendar.ClosureRule, 0, len(c.Closures))
	for _, r := range c.Closures {
		rules = append(rules, calendar.ClosureRule{Name: r.Name, RRule: r.RRule})
	}
	return rules
}

// ModelSettings returns the configured thresholds with defaults filled in.
// Configured patterns replace the default table for the bands they name.
func (c *Config) ModelSettings() model.Settings {
	s := c.Settings
	settings := model.Settings{
		SaturdayTarget:       s.SaturdayTarget,
		SaturdayShift:        model.ShiftCode(s.SaturdayShift),
		DailyHeadcount:       s.DailyHeadcount,
		ChiefMonthlyCap:      s.ChiefMonthlyCap,
		PartTimeOverlapHours: s.PartTimeOverlapHours,
		FairnessTolerance:    s.FairnessTolerance,
		WeeklyExtremeCap:     s.WeeklyExtremeCap,
	}

	if len(s.Patterns) > 0 {
		patterns := model.DefaultPatterns()
		for _, p := range s.Patterns {
			for i := range patterns {
				if patterns[i].Code == model.ShiftCode(p.Code) {
					patterns[i] = model.PatternDefinition{Code: patterns[i].Code, Start: p.Start, End: p.End, Minimum: p.Minimum}
				}
			}
		}
		settings.Patterns = patterns
	}

	return settings.Normalized()
}

// loadDotEnv reads .env.<env> then .env from the working directory when present.
// Variables already set in the environment are not overridden.
func loadDotEnv(env string) error {
	for _, name := range []string{".env." + env, ".env"} {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// findConfigFile searches the current directory and then the home directory for
// shift_config.<env>.yaml, then shift_config.yaml
func findConfigFile(env string) (string, error) {
	names := []string{"shift_config.yaml"}
	if env != "" {
		names = append([]string{fmt.Sprintf("shift_config.%s.yaml", env)}, names...)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		for _, candidate := range []string{name, filepath.Join(homeDir, name)} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

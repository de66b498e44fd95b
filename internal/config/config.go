package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scoreboard/internal/scoring"
)

// DateLayout is the format of competition dates in the config file
const DateLayout = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Competition CompetitionConfig `json:"competition"`
	Source      SourceConfig      `json:"source"`
	Display     DisplayConfig     `json:"display"`
	Log         LogConfig         `json:"log"`
	Metrics     MetricsConfig     `json:"metrics"`
}

// CompetitionConfig holds the competition schedule
type CompetitionConfig struct {
	Name            string `json:"name"`
	StartDate       string `json:"start_date"`
	Week1EndDate    string `json:"week1_end_date"`
	TotalWeeks      int    `json:"total_weeks"`
	RunningCategory string `json:"running_category"`
}

// SourceConfig describes where the activity export is read from
type SourceConfig struct {
	// Location is an http(s) URL, a .xlsx/.csv path or a .db/.sqlite path
	Location       string `json:"location"`
	SQLiteTable    string `json:"sqlite_table"`
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// LogConfig controls the logrus setup
type LogConfig struct {
	Level  string `json:"level"`
	File   string `json:"file"`
	JSON   bool   `json:"json"`
	Stdout bool   `json:"stdout"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `json:"addr"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Competition: CompetitionConfig{
			Name:            "Spring Fitness Challenge",
			StartDate:       "2025-03-10",
			Week1EndDate:    "2025-03-17",
			TotalWeeks:      8,
			RunningCategory: scoring.DefaultRunningCategory,
		},
		Source: SourceConfig{
			SQLiteTable:    "activities",
			TimeoutSeconds: 30,
		},
		Display: DisplayConfig{
			DistanceUnit: "mi",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.scoreboard/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path, filling unset fields with defaults
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Competition.StartDate == "" {
		cfg.Competition.StartDate = defaults.Competition.StartDate
	}
	if cfg.Competition.Week1EndDate == "" {
		cfg.Competition.Week1EndDate = defaults.Competition.Week1EndDate
	}
	if cfg.Competition.TotalWeeks == 0 {
		cfg.Competition.TotalWeeks = defaults.Competition.TotalWeeks
	}
	if cfg.Competition.RunningCategory == "" {
		cfg.Competition.RunningCategory = defaults.Competition.RunningCategory
	}
	if cfg.Source.SQLiteTable == "" {
		cfg.Source.SQLiteTable = defaults.Source.SQLiteTable
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = defaults.Source.TimeoutSeconds
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.scoreboard/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file at path if none exists.
// An empty path means the default location.
func CreateExample(path string) error {
	if path == "" {
		var err error
		if path, err = getConfigPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Source.Location = "YOUR_EXPORT_URL_OR_PATH"
	return SaveTo(path, &example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	loc := strings.TrimSpace(c.Source.Location)
	if loc == "" || loc == "YOUR_EXPORT_URL_OR_PATH" {
		return errors.New("source.location is required - an http(s) URL, .xlsx/.csv file or SQLite database")
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source.timeout_seconds must not be negative, got %d", c.Source.TimeoutSeconds)
	}

	if _, err := c.Calendar(); err != nil {
		return err
	}

	// Validate display units
	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log.level %q is not a logrus level", c.Log.Level)
	}

	return nil
}

// Calendar builds the competition week schedule
func (c *Config) Calendar() (scoring.Calendar, error) {
	start, err := time.Parse(DateLayout, c.Competition.StartDate)
	if err != nil {
		return scoring.Calendar{}, fmt.Errorf("competition.start_date must be YYYY-MM-DD, got %q", c.Competition.StartDate)
	}
	week1End, err := time.Parse(DateLayout, c.Competition.Week1EndDate)
	if err != nil {
		return scoring.Calendar{}, fmt.Errorf("competition.week1_end_date must be YYYY-MM-DD, got %q", c.Competition.Week1EndDate)
	}

	cal, err := scoring.NewCalendar(start, week1End, c.Competition.TotalWeeks)
	if err != nil {
		return scoring.Calendar{}, fmt.Errorf("competition schedule: %w", err)
	}
	return cal, nil
}

// Timeout is the source fetch timeout
func (c *Config) Timeout() time.Duration {
	if c.Source.TimeoutSeconds <= 0 {
		return time.Duration(DefaultConfig().Source.TimeoutSeconds) * time.Second
	}
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Path returns the default config file location
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".scoreboard"), nil
}

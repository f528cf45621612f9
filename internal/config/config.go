// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone database for export.timezone validation

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/semester/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Planner PlannerConfig `toml:"planner"`
	Storage StorageConfig `toml:"storage"`
	Info    InfoConfig    `toml:"info"`
	Export  ExportConfig  `toml:"export"`
	Terms   []TermConfig  `toml:"terms"`
	UI      UIConfig      `toml:"ui"`
}

// PlannerConfig holds planning defaults.
type PlannerConfig struct {
	DefaultTerm string `toml:"default_term"` // e.g., "Fall 2025"
	GridStart   string `toml:"grid_start"`   // first hour shown in the week grid, "HH:MM"
	GridEnd     string `toml:"grid_end"`     // last hour shown in the week grid, "HH:MM"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// InfoConfig holds settings for the course-info lookup.
type InfoConfig struct {
	BaseURL        string `toml:"base_url"`        // e.g., "https://mcgill.courses"
	TimeoutSeconds int    `toml:"timeout_seconds"` // HTTP timeout
}

// ExportConfig holds calendar export settings.
type ExportConfig struct {
	Timezone string `toml:"timezone"` // IANA name, e.g., "America/Montreal"
}

// TermConfig gives the first and last day of classes of a term.
type TermConfig struct {
	Name  string `toml:"name"`
	Start string `toml:"start"` // YYYY-MM-DD
	End   string `toml:"end"`   // YYYY-MM-DD
}

// UIConfig holds output settings.
type UIConfig struct {
	Color bool `toml:"color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DefaultTerm: "Fall 2025",
			GridStart:   "08:00",
			GridEnd:     "21:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Info: InfoConfig{
			BaseURL:        "https://mcgill.courses",
			TimeoutSeconds: 10,
		},
		Export: ExportConfig{
			Timezone: "America/Montreal",
		},
		Terms: []TermConfig{
			{Name: "Fall 2025", Start: "2025-09-02", End: "2025-12-03"},
			{Name: "Winter 2026", Start: "2026-01-07", End: "2026-04-14"},
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "semester.db"
	}
	return filepath.Join(home, ".local", "share", "semester", "semester.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "semester", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies
// overrides from a .env file next to the config and from the environment.
// Real environment variables win over .env entries.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg, envLookup(dotenv))

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// Configured terms replace the defaults instead of merging into them.
	defaults := cfg.Terms
	cfg.Terms = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if len(cfg.Terms) == 0 {
		cfg.Terms = defaults
	}

	return nil
}

// readDotEnv reads key/value pairs from a .env file without touching the
// process environment. A missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking .env file: %w", err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parsing .env file: %w", err)
	}
	return values, nil
}

func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("SEMESTER_DEFAULT_TERM"); v != "" {
		cfg.Planner.DefaultTerm = v
	}
	if v := getenv("SEMESTER_GRID_START"); v != "" {
		cfg.Planner.GridStart = v
	}
	if v := getenv("SEMESTER_GRID_END"); v != "" {
		cfg.Planner.GridEnd = v
	}
	if v := getenv("SEMESTER_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := getenv("SEMESTER_INFO_BASE_URL"); v != "" {
		cfg.Info.BaseURL = v
	}
	if v := getenv("SEMESTER_INFO_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Info.TimeoutSeconds = n
		}
	}
	if v := getenv("SEMESTER_TIMEZONE"); v != "" {
		cfg.Export.Timezone = v
	}
	if v := getenv("SEMESTER_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Color = b
		}
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Planner.GridStart, "grid_start"); err != nil {
		return err
	}
	if err := validateTime(c.Planner.GridEnd, "grid_end"); err != nil {
		return err
	}
	if c.Planner.GridStart >= c.Planner.GridEnd {
		return errors.New("grid_start must be before grid_end")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Info.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Export.Timezone, err)
	}

	seen := make(map[string]bool, len(c.Terms))
	for _, t := range c.Terms {
		if t.Name == "" {
			return errors.New("term name must be set")
		}
		if seen[t.Name] {
			return fmt.Errorf("term %q configured twice", t.Name)
		}
		seen[t.Name] = true
		if _, err := dateutil.NewDateRange(t.Start, t.End, time.UTC); err != nil {
			return fmt.Errorf("term %q dates: %w", t.Name, err)
		}
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Term returns the configured calendar for a term name.
func (c *Config) Term(name string) (TermConfig, bool) {
	for _, t := range c.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return TermConfig{}, false
}

// Timeout returns the course-info HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Info.TimeoutSeconds) * time.Second
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

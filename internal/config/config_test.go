package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Planner.DefaultTerm != "Fall 2025" {
		t.Errorf("expected default_term Fall 2025, got %s", cfg.Planner.DefaultTerm)
	}
	if cfg.Planner.GridStart != "08:00" {
		t.Errorf("expected grid_start 08:00, got %s", cfg.Planner.GridStart)
	}
	if cfg.Info.BaseURL != "https://mcgill.courses" {
		t.Errorf("expected base_url https://mcgill.courses, got %s", cfg.Info.BaseURL)
	}
	if len(cfg.Terms) != 2 {
		t.Errorf("expected 2 terms, got %d", len(cfg.Terms))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Planner.GridEnd != "21:00" {
		t.Errorf("expected default grid_end, got %s", cfg.Planner.GridEnd)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[planner]
default_term = "Winter 2026"
grid_start = "09:00"
grid_end = "18:00"

[storage]
db_path = "/tmp/test.db"

[info]
base_url = "http://localhost:8080"
timeout_seconds = 3

[export]
timezone = "Europe/Berlin"

[[terms]]
name = "Summer 2026"
start = "2026-05-04"
end = "2026-06-12"

[ui]
color = false
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Planner.DefaultTerm != "Winter 2026" {
		t.Errorf("expected default_term Winter 2026, got %s", cfg.Planner.DefaultTerm)
	}
	if cfg.Planner.GridStart != "09:00" || cfg.Planner.GridEnd != "18:00" {
		t.Errorf("unexpected grid %s-%s", cfg.Planner.GridStart, cfg.Planner.GridEnd)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Timeout())
	}
	if cfg.Export.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone Europe/Berlin, got %s", cfg.Export.Timezone)
	}
	if term, ok := cfg.Term("Summer 2026"); !ok || term.Start != "2026-05-04" {
		t.Errorf("expected Summer 2026 term, got %+v (found=%v)", term, ok)
	}
	if len(cfg.Terms) != 1 {
		t.Errorf("expected configured terms to replace defaults, got %d terms", len(cfg.Terms))
	}
	if cfg.UI.Color {
		t.Error("expected color disabled")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[planner]
default_term = "Fall 2025"
grid_end = "20:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("SEMESTER_DEFAULT_TERM", "Winter 2026")
	t.Setenv("SEMESTER_INFO_BASE_URL", "http://localhost:9999")
	t.Setenv("SEMESTER_COLOR", "false")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Planner.DefaultTerm != "Winter 2026" {
		t.Errorf("expected default_term from env, got %s", cfg.Planner.DefaultTerm)
	}
	// File value should be kept when no env override
	if cfg.Planner.GridEnd != "20:00" {
		t.Errorf("expected grid_end 20:00 from file, got %s", cfg.Planner.GridEnd)
	}
	// Env should override default
	if cfg.Info.BaseURL != "http://localhost:9999" {
		t.Errorf("expected base_url from env, got %s", cfg.Info.BaseURL)
	}
	if cfg.UI.Color {
		t.Error("expected color disabled from env")
	}
}

func TestLoadFrom_DotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	dotenv := "SEMESTER_DB_PATH=/tmp/from-dotenv.db\nSEMESTER_TIMEZONE=Europe/Paris\n"
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(dotenv), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("SEMESTER_TIMEZONE", "Asia/Tokyo")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/from-dotenv.db" {
		t.Errorf("expected db_path from .env, got %s", cfg.Storage.DBPath)
	}
	// Process environment wins over .env
	if cfg.Export.Timezone != "Asia/Tokyo" {
		t.Errorf("expected timezone from env, got %s", cfg.Export.Timezone)
	}
	if _, ok := os.LookupEnv("SEMESTER_DB_PATH"); ok {
		t.Error(".env values must not leak into the process environment")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid start format", func(c *Config) { c.Planner.GridStart = "8:00" }},
		{"grid start after end", func(c *Config) { c.Planner.GridStart = "22:00" }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"zero timeout", func(c *Config) { c.Info.TimeoutSeconds = 0 }},
		{"bad timezone", func(c *Config) { c.Export.Timezone = "Mars/Olympus" }},
		{"unnamed term", func(c *Config) { c.Terms = append(c.Terms, TermConfig{Start: "2026-05-01", End: "2026-06-01"}) }},
		{"duplicate term", func(c *Config) { c.Terms = append(c.Terms, c.Terms[0]) }},
		{"bad term date", func(c *Config) { c.Terms[0].Start = "09/02/2025" }},
		{"term ends before start", func(c *Config) { c.Terms[0].End = "2025-08-01" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTerm(t *testing.T) {
	cfg := Default()

	if _, ok := cfg.Term("Fall 2025"); !ok {
		t.Error("expected Fall 2025 to be configured")
	}
	if _, ok := cfg.Term("fall 2025"); ok {
		t.Error("term lookup must be exact")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.Planner.DefaultTerm = "Winter 2026"
	cfg.Planner.GridStart = "07:30"
	cfg.Storage.DBPath = filepath.Join(tmpDir, "semester.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Planner.DefaultTerm != "Winter 2026" {
		t.Errorf("expected default_term Winter 2026, got %s", loaded.Planner.DefaultTerm)
	}
	if loaded.Planner.GridStart != "07:30" {
		t.Errorf("expected grid_start 07:30, got %s", loaded.Planner.GridStart)
	}
	if _, ok := loaded.Term("Winter 2026"); !ok {
		t.Error("expected saved terms to load back")
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/config"
)

func TestLoadDefaultConfigUsesEnvTMDBKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Catalog.APIKey != "test-key" {
		t.Fatalf("expected env API key, got %q", cfg.Catalog.APIKey)
	}
	if strings.HasPrefix(cfg.Paths.DataDir, "~") {
		t.Fatalf("expected expanded data dir, got %q", cfg.Paths.DataDir)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("expected absolute data dir, got %q", cfg.Paths.DataDir)
	}
	if cfg.Budget.WeekdayMinutes != 120 || cfg.Budget.WeekendMinutes != 240 {
		t.Fatalf("unexpected budget defaults: %+v", cfg.Budget)
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error when catalog API key missing")
	}
}

func TestLoadParsesFileOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[catalog]
api_key = "file-key"
request_timeout = 5

[budget]
weekday_minutes = 90
weekend_minutes = 300

[scheduling]
mode = "round_robin"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected file to resolve, got exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Catalog.APIKey != "file-key" {
		t.Fatalf("expected file API key, got %q", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.RequestTimeout != 5 {
		t.Fatalf("expected timeout 5, got %d", cfg.Catalog.RequestTimeout)
	}
	if cfg.Budget.WeekdayMinutes != 90 || cfg.Budget.WeekendMinutes != 300 {
		t.Fatalf("unexpected budget: %+v", cfg.Budget)
	}
	if cfg.Scheduling.Mode != "round_robin" {
		t.Fatalf("unexpected mode: %q", cfg.Scheduling.Mode)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownSchedulingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[catalog]
api_key = "key"

[scheduling]
mode = "shuffle"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown scheduling mode")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[catalog]") {
		t.Fatal("expected catalog section in sample config")
	}
}

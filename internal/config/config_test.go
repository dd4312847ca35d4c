package config

import (
	"os"
	"path/filepath"
	"testing"
)

var allEnvVars = []string{
	"EDGARDASH_ENVIRONMENT", "EDGARDASH_API_BASE_URL", "EDGARDASH_API_TIMEOUT_SEC",
	"EDGARDASH_POLLING_JOB_INTERVAL_MS", "EDGARDASH_STORAGE_BACKEND", "EDGARDASH_LOGGING_LEVEL",
}

func unsetAll() {
	for _, e := range allEnvVars {
		os.Unsetenv(e)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	unsetAll()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment: got %q, want %q", cfg.Environment, "development")
	}
	if cfg.API.TimeoutSec != 30 {
		t.Errorf("API.TimeoutSec: got %d, want 30", cfg.API.TimeoutSec)
	}
	if cfg.API.UserAgent != "edgardash/"+Version {
		t.Errorf("API.UserAgent: got %q", cfg.API.UserAgent)
	}
	if cfg.API.MaxRPS != 0 {
		t.Errorf("API.MaxRPS: got %d, want 0", cfg.API.MaxRPS)
	}
	if cfg.API.CacheSize != 256 || cfg.API.CacheTTL().Seconds() != 300 {
		t.Errorf("API cache: got size %d ttl %v, want 256 and 5m", cfg.API.CacheSize, cfg.API.CacheTTL())
	}
	if cfg.Polling.JobIntervalMs != 2000 {
		t.Errorf("Polling.JobIntervalMs: got %d, want 2000", cfg.Polling.JobIntervalMs)
	}
	if cfg.Polling.ActiveJobsIntervalMs != 5000 {
		t.Errorf("Polling.ActiveJobsIntervalMs: got %d, want 5000", cfg.Polling.ActiveJobsIntervalMs)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend: got %q, want %q", cfg.Storage.Backend, "file")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	unsetAll()
	path := writeConfig(t, `
environment: "production"
api:
  base_url: "https://edgar.example.com"
  timeout_sec: 10
polling:
  job_interval_ms: 500
storage:
  backend: "sqlite"
  dir: "/var/lib/edgardash"
logging:
  level: "debug"
  format: "json"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production environment, got %q", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://edgar.example.com" {
		t.Errorf("API.BaseURL: got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout().Seconds() != 10 {
		t.Errorf("API.Timeout: got %v, want 10s", cfg.API.Timeout())
	}
	if cfg.Polling.JobInterval().Milliseconds() != 500 {
		t.Errorf("Polling.JobInterval: got %v, want 500ms", cfg.Polling.JobInterval())
	}
	if cfg.Polling.ActiveJobsIntervalMs != 5000 {
		t.Errorf("Polling.ActiveJobsIntervalMs should keep default, got %d", cfg.Polling.ActiveJobsIntervalMs)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend: got %q, want %q", cfg.Storage.Backend, "sqlite")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.File() != path {
		t.Errorf("File: got %q, want %q", cfg.File(), path)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	unsetAll()
	tests := []struct {
		name    string
		content string
	}{
		{"environment", "environment: staging\n"},
		{"backend", "storage:\n  backend: redis\n"},
		{"format", "logging:\n  format: xml\n"},
		{"timeout", "api:\n  timeout_sec: 0\n"},
		{"polling", "polling:\n  job_interval_ms: -1\n"},
		{"max_rps", "api:\n  max_rps: -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

// ── Environment overrides ──

func TestEnvOverridesFile(t *testing.T) {
	unsetAll()
	path := writeConfig(t, "api:\n  base_url: \"http://from-file:8080\"\n")
	t.Setenv("EDGARDASH_API_BASE_URL", "http://from-env:9090")
	t.Setenv("EDGARDASH_LOGGING_LEVEL", "warn")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.API.BaseURL != "http://from-env:9090" {
		t.Errorf("API.BaseURL: got %q, want env value", cfg.API.BaseURL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "warn")
	}
}

// ── Describe ──

func TestDescribeSources(t *testing.T) {
	unsetAll()
	path := writeConfig(t, "storage:\n  backend: memory\n")
	t.Setenv("EDGARDASH_API_TIMEOUT_SEC", "5")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}

	got := map[string]Setting{}
	for _, s := range Describe(cfg) {
		got[s.Key] = s
	}
	if len(got) != len(settingKeys) {
		t.Errorf("expected %d settings, got %d", len(settingKeys), len(got))
	}

	tests := []struct {
		key    string
		value  string
		source Source
	}{
		{"api.timeout_sec", "5", SourceEnv},
		{"storage.backend", "memory", SourceConfig},
		{"logging.level", "info", SourceDefault},
	}
	for _, tt := range tests {
		s := got[tt.key]
		if s.Value != tt.value {
			t.Errorf("%s: expected value %q, got %q", tt.key, tt.value, s.Value)
		}
		if s.Source != tt.source {
			t.Errorf("%s: expected source %q, got %q", tt.key, tt.source, s.Source)
		}
	}
	if got["api.timeout_sec"].EnvVar != "EDGARDASH_API_TIMEOUT_SEC" {
		t.Errorf("unexpected env var name %q", got["api.timeout_sec"].EnvVar)
	}
}

func TestDescribeWithoutLoad(t *testing.T) {
	cfg := &Config{Environment: "development"}
	for _, s := range Describe(cfg) {
		if s.Source != SourceDefault {
			t.Errorf("%s: expected default source, got %q", s.Key, s.Source)
		}
	}
}

// ── ResolveAPIBase ──

func TestResolveAPIBase(t *testing.T) {
	tests := []struct {
		base string
		env  string
		want string
	}{
		{"", "development", "http://localhost:8080/api"},
		{"", "production", "http://localhost:8080/api"},
		{"https://edgar.example.com", "production", "https://edgar.example.com/api"},
		{"https://edgar.example.com/", "development", "https://edgar.example.com/api"},
		{"https://edgar.example.com/api", "development", "https://edgar.example.com/api"},
	}
	for _, tt := range tests {
		cfg := &Config{Environment: tt.env, API: APIConfig{BaseURL: tt.base}}
		if got := ResolveAPIBase(cfg, nil); got != tt.want {
			t.Errorf("ResolveAPIBase(%q, %s): expected %q, got %q", tt.base, tt.env, tt.want, got)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := homeDir()
	if home == "" {
		t.Fatal("homeDir() returned empty string")
	}
	if got := expandHome("~/.edgardash"); got != filepath.Join(home, ".edgardash") {
		t.Errorf("expected path under home, got %q", got)
	}
	if got := expandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
}

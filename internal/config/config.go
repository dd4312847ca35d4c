// Package config handles configuration loading for edgardash.
// It supports YAML config files, a .env file and environment variable
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags "-X .../config.Version=...".
var Version = "dev"

// EnvPrefix prefixes every environment override, e.g. EDGARDASH_API_BASE_URL.
const EnvPrefix = "EDGARDASH"

// FallbackBaseURL is used when api.base_url is not configured.
const FallbackBaseURL = "http://localhost:8080"

// Config represents the complete application configuration.
type Config struct {
	Environment string        `mapstructure:"environment" yaml:"environment"` // "development" or "production"
	API         APIConfig     `mapstructure:"api"         yaml:"api"`
	Polling     PollingConfig `mapstructure:"polling"     yaml:"polling"`
	Storage     StorageConfig `mapstructure:"storage"     yaml:"storage"`
	Export      ExportConfig  `mapstructure:"export"      yaml:"export"`
	Logging     LoggingConfig `mapstructure:"logging"     yaml:"logging"`

	file    string
	sources map[string]Source
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"      yaml:"base_url"` // backend root without /api
	TimeoutSec  int    `mapstructure:"timeout_sec"   yaml:"timeout_sec"`
	UserAgent   string `mapstructure:"user_agent"    yaml:"user_agent"`
	MaxRPS      int    `mapstructure:"max_rps"       yaml:"max_rps"`       // 0 = unlimited
	CacheSize   int    `mapstructure:"cache_size"    yaml:"cache_size"`    // 0 disables the lookup cache
	CacheTTLSec int    `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"` // 0 disables the lookup cache
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// CacheTTL returns how long immutable lookups are kept.
func (c APIConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// PollingConfig holds the download job polling intervals.
type PollingConfig struct {
	JobIntervalMs        int `mapstructure:"job_interval_ms"         yaml:"job_interval_ms"`
	ActiveJobsIntervalMs int `mapstructure:"active_jobs_interval_ms" yaml:"active_jobs_interval_ms"`
}

// JobInterval is the polling interval for a single job.
func (c PollingConfig) JobInterval() time.Duration {
	return time.Duration(c.JobIntervalMs) * time.Millisecond
}

// ActiveJobsInterval is the polling interval for the active job list.
func (c PollingConfig) ActiveJobsInterval() time.Duration {
	return time.Duration(c.ActiveJobsIntervalMs) * time.Millisecond
}

// StorageConfig selects where local history and preferences are kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // "file", "sqlite" or "memory"
	Dir     string `mapstructure:"dir"     yaml:"dir"`
}

// Directory returns Dir with a leading "~" expanded.
func (c StorageConfig) Directory() string {
	return expandHome(c.Dir)
}

// ExportConfig holds export settings.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// File returns the config file that was read, or "" if none was.
func (c *Config) File() string { return c.file }

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.edgardash/config.yaml (home directory)
//  3. /etc/edgardash/config.yaml (system)
//
// A .env file in the working directory is applied to the environment first.
// Environment variables override config file values.
// Format: EDGARDASH_<SECTION>_<KEY>, e.g., EDGARDASH_API_BASE_URL
func Load() (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".edgardash"))
	v.AddConfigPath("/etc/edgardash")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return build(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.file = v.ConfigFileUsed()
	cfg.sources = make(map[string]Source, len(settingKeys))
	for _, key := range settingKeys {
		cfg.sources[key] = sourceOf(v, key)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Backend
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("api.user_agent", "edgardash/"+Version)
	v.SetDefault("api.max_rps", 0)
	v.SetDefault("api.cache_size", 256)
	v.SetDefault("api.cache_ttl_sec", 300)

	// Polling
	v.SetDefault("polling.job_interval_ms", 2000)
	v.SetDefault("polling.active_jobs_interval_ms", 5000)

	// Local stores
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.dir", "~/.edgardash")

	v.SetDefault("export.dir", ".")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Environment) {
	case "development", "production":
	default:
		return fmt.Errorf("invalid environment %q (want development or production)", c.Environment)
	}
	switch strings.ToLower(c.Storage.Backend) {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage.backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (want text or json)", c.Logging.Format)
	}
	if c.API.TimeoutSec <= 0 {
		return fmt.Errorf("api.timeout_sec must be positive, got %d", c.API.TimeoutSec)
	}
	if c.API.MaxRPS < 0 || c.API.CacheSize < 0 || c.API.CacheTTLSec < 0 {
		return errors.New("api.max_rps, api.cache_size and api.cache_ttl_sec must not be negative")
	}
	if c.Polling.JobIntervalMs <= 0 || c.Polling.ActiveJobsIntervalMs <= 0 {
		return errors.New("polling intervals must be positive")
	}
	return nil
}

// ResolveAPIBase returns the backend API root, <base_url>/api. Without a
// configured base URL it falls back to FallbackBaseURL; in production that
// fallback is logged as an error but still used.
func ResolveAPIBase(cfg *Config, log *slog.Logger) string {
	base := strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if base == "" {
		if cfg.IsProduction() && log != nil {
			log.Error("api.base_url is not set in production, falling back",
				"fallback", FallbackBaseURL, "env", EnvPrefix+"_API_BASE_URL")
		}
		base = FallbackBaseURL
	}
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

// loadDotEnv applies ./.env without overriding variables already set.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("ignoring unreadable .env file", "error", err)
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Source records where an effective setting came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Setting is one effective configuration value.
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source Source `json:"source"`
	EnvVar string `json:"env_var"`
}

// settingKeys lists every key Describe reports, in display order.
var settingKeys = []string{
	"environment",
	"api.base_url",
	"api.timeout_sec",
	"api.user_agent",
	"api.max_rps",
	"api.cache_size",
	"api.cache_ttl_sec",
	"polling.job_interval_ms",
	"polling.active_jobs_interval_ms",
	"storage.backend",
	"storage.dir",
	"export.dir",
	"logging.level",
	"logging.format",
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Describe returns every effective setting with its source.
func Describe(cfg *Config) []Setting {
	values := map[string]string{
		"environment":                     cfg.Environment,
		"api.base_url":                    cfg.API.BaseURL,
		"api.timeout_sec":                 strconv.Itoa(cfg.API.TimeoutSec),
		"api.user_agent":                  cfg.API.UserAgent,
		"api.max_rps":                     strconv.Itoa(cfg.API.MaxRPS),
		"api.cache_size":                  strconv.Itoa(cfg.API.CacheSize),
		"api.cache_ttl_sec":               strconv.Itoa(cfg.API.CacheTTLSec),
		"polling.job_interval_ms":         strconv.Itoa(cfg.Polling.JobIntervalMs),
		"polling.active_jobs_interval_ms": strconv.Itoa(cfg.Polling.ActiveJobsIntervalMs),
		"storage.backend":                 cfg.Storage.Backend,
		"storage.dir":                     cfg.Storage.Dir,
		"export.dir":                      cfg.Export.Dir,
		"logging.level":                   cfg.Logging.Level,
		"logging.format":                  cfg.Logging.Format,
	}

	out := make([]Setting, 0, len(settingKeys))
	for _, key := range settingKeys {
		src, ok := cfg.sources[key]
		if !ok {
			src = SourceDefault
		}
		out = append(out, Setting{Key: key, Value: values[key], Source: src, EnvVar: EnvVar(key)})
	}
	return out
}

// sourceOf checks the environment first since it wins over the file.
func sourceOf(v *viper.Viper, key string) Source {
	if _, ok := os.LookupEnv(EnvVar(key)); ok {
		return SourceEnv
	}
	if v.InConfig(key) {
		return SourceConfig
	}
	return SourceDefault
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by FromEnv.
const (
	EnvControlUnitURL  = "FLOWKIT_CONTROL_UNIT_URL"
	EnvTraceMonitorURL = "FLOWKIT_TRACE_MONITOR_URL"
	EnvRequestTimeout  = "FLOWKIT_REQUEST_TIMEOUT"
	EnvJournalBackend  = "FLOWKIT_JOURNAL_BACKEND"
	EnvJournalPath     = "FLOWKIT_JOURNAL_PATH"
	EnvJournalRedisURL = "FLOWKIT_JOURNAL_REDIS_URL"
)

// FromFile loads configuration from a YAML file. Fields missing from
// the file keep their defaults.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses configuration from YAML bytes.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads configuration from the environment, reading a .env
// file first if one exists (variables already set in the environment
// win). Unset variables keep their defaults.
func FromEnv() (Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Default()
	return applyEnv(cfg)
}

// Load reads the file when path is non-empty, then applies environment
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = FromFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	return applyEnv(cfg)
}

// applyEnv overlays recognized environment variables onto cfg.
func applyEnv(cfg Config) (Config, error) {
	if v := os.Getenv(EnvControlUnitURL); v != "" {
		cfg.ControlUnitURL = v
	}
	if v := os.Getenv(EnvTraceMonitorURL); v != "" {
		cfg.TraceMonitorURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvJournalBackend); v != "" {
		cfg.Journal.Backend = v
	}
	if v := os.Getenv(EnvJournalPath); v != "" {
		cfg.Journal.Path = v
	}
	if v := os.Getenv(EnvJournalRedisURL); v != "" {
		cfg.Journal.RedisURL = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

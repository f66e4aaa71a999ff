// Package config loads studio settings: service endpoints, the request
// timeout, and the journal backend.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Journal backend names accepted in configuration.
const (
	JournalMemory = "memory"
	JournalSQLite = "sqlite"
	JournalRedis  = "redis"
)

// Defaults applied by Default() and wherever a field is left unset.
const (
	DefaultControlUnitURL  = "http://localhost:8800"
	DefaultTraceMonitorURL = "http://localhost:9000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultJournalPath     = "./flows.db"
)

// Config holds studio settings.
type Config struct {
	// ControlUnitURL is the base URL of the flow control unit.
	ControlUnitURL string `yaml:"control_unit_url"`

	// TraceMonitorURL is the base URL of the trace monitor.
	TraceMonitorURL string `yaml:"trace_monitor_url"`

	// RequestTimeout bounds every network operation.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Journal selects and configures the submission journal.
	Journal JournalConfig `yaml:"journal"`
}

// JournalConfig configures the submission journal backend.
type JournalConfig struct {
	// Backend is one of "memory", "sqlite", or "redis".
	// Empty disables the journal.
	Backend string `yaml:"backend"`

	// Path is the SQLite database file (sqlite backend only).
	Path string `yaml:"path"`

	// RedisURL is the Redis connection URL (redis backend only).
	RedisURL string `yaml:"redis_url"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		ControlUnitURL:  DefaultControlUnitURL,
		TraceMonitorURL: DefaultTraceMonitorURL,
		RequestTimeout:  DefaultRequestTimeout,
		Journal: JournalConfig{
			Backend: JournalMemory,
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.ControlUnitURL == "" {
		return errors.New("control_unit_url is required")
	}
	if c.TraceMonitorURL == "" {
		return errors.New("trace_monitor_url is required")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout cannot be negative")
	}

	switch c.Journal.Backend {
	case "", JournalMemory:
	case JournalSQLite:
		if c.Journal.Path == "" {
			return errors.New("journal.path is required for the sqlite backend")
		}
	case JournalRedis:
		if c.Journal.RedisURL == "" {
			return errors.New("journal.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown journal backend: %s", c.Journal.Backend)
	}
	return nil
}

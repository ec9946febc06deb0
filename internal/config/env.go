package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts the name of every environment variable read by Load.
const EnvPrefix = "TASKS_"

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvPrefix + "DATA_DIR"); v != "" {
		cfg.DataDir = v
		set("data_dir")
	}
	if v := os.Getenv(EnvPrefix + "STORAGE"); v != "" {
		cfg.Storage = v
		set("storage")
	}
	if v := os.Getenv(EnvPrefix + "HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sHISTORY_SIZE: %w", EnvPrefix, err)
		}
		cfg.HistorySize = n
		set("history_size")
	}
	if v := os.Getenv(EnvPrefix + "FILTER"); v != "" {
		cfg.DefaultFilter = v
		set("default_filter")
	}

	// Logging configuration
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvPrefix + "LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvPrefix + "LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

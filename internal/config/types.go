package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDataDir       = "~/.tasks"
	DefaultStorage       = "file"
	DefaultHistorySize   = 50
	DefaultFilter        = "active"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultLogTimestamps = false
	DefaultLogCaller     = false
)

// Config holds the full configuration for tasks.
type Config struct {
	// Where task and category data lives (supports ~ expansion)
	DataDir string `toml:"data_dir"`

	// Storage backend: file, sqlite, or memory
	Storage string `toml:"storage"`

	// Maximum number of undo snapshots kept per session
	HistorySize int `toml:"history_size"`

	// Filter used by ls and the TUI when none is given
	DefaultFilter string `toml:"default_filter"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_dir",
		"storage",
		"history_size",
		"default_filter",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

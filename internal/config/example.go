package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.tasks"

# Storage backend: file (one JSON file per list), sqlite, or memory
storage = "file"

# Undo steps kept per session
history_size = 50

# Filter used when none is given: all, active, or completed
default_filter = "active"

# Logging
log_level = "warn"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}

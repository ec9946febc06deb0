package config

import (
	"flag"
)

// parseFlags defines the global flags on fs, parses args and applies the
// flags that were set. If sources is non-nil, it tracks the source of each
// value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}

	// Flags bind to locals so that unset flags never clobber values from
	// files or the environment.
	var (
		dataDir       = cfg.DataDir
		storage       = cfg.Storage
		historySize   = cfg.HistorySize
		filter        = cfg.DefaultFilter
		logLevel      = cfg.LogLevel
		logFormat     = cfg.LogFormat
		logTimestamps = cfg.LogTimestamps
		logCaller     = cfg.LogCaller
	)
	fs.StringVar(&dataDir, "data-dir", dataDir, "Directory holding task data")
	fs.StringVar(&storage, "storage", storage, "Storage backend (file, sqlite, memory)")
	fs.IntVar(&historySize, "history-size", historySize, "Maximum undo steps kept per session")
	fs.StringVar(&filter, "filter", filter, "Default filter (all, active, completed)")
	fs.StringVar(&logLevel, "log-level", logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", logFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", logTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", logCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"data-dir":       "data_dir",
		"storage":        "storage",
		"history-size":   "history_size",
		"filter":         "default_filter",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = dataDir
		case "storage":
			cfg.Storage = storage
		case "history-size":
			cfg.HistorySize = historySize
		case "filter":
			cfg.DefaultFilter = filter
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}

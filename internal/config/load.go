package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/store"
	"github.com/nibzard/tasks-go/internal/todo"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasks/tasks.toml or OS-specific config dir)
// 3. Project config file (tasks.toml or .tasks.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes TOML config from path over cfg and records the
// keys the file defines.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources == nil {
		return nil
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if !filepath.IsAbs(cfg.DataDir) {
		abs, err := filepath.Abs(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("resolving data_dir: %w", err)
		}
		cfg.DataDir = abs
	}

	kind, err := store.ParseKind(cfg.Storage)
	if err != nil {
		return err
	}
	cfg.Storage = string(kind)

	if cfg.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", cfg.HistorySize)
	}

	filter, err := todo.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	cfg.DefaultFilter = string(filter)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", cfg.LogFormat)
	}

	return nil
}

// StorageKind returns the configured storage backend.
func (c *Config) StorageKind() store.Kind {
	return store.Kind(c.Storage)
}

// Filter returns the configured default filter.
func (c *Config) Filter() todo.Filter {
	f, err := todo.ParseFilter(c.DefaultFilter)
	if err != nil {
		return todo.FilterActive
	}
	return f
}

// LoggingOptions returns logger options for the configured log settings.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.Timestamps = c.LogTimestamps
	opts.Caller = c.LogCaller
	return opts
}

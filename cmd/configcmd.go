package cmd

import (
	"fmt"
	"strconv"

	"github.com/nibzard/tasks-go/internal/config"
)

// configCommand shows the effective configuration.
//
//	tasks config          values with their source
//	tasks config example  an example tasks.toml
//	tasks config path     the config file in use, if any
func (c *cli) configCommand(args []string) error {
	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}

	switch sub {
	case "":
		c.printConfig()
		return nil
	case "example":
		fmt.Fprint(c.out, config.ExampleConfig())
		return nil
	case "path":
		if path := c.cfg.GetConfigFile(); path != "" {
			fmt.Fprintln(c.out, path)
		}
		return nil
	default:
		return fmt.Errorf("unknown config command: %s (expected example or path)", sub)
	}
}

func (c *cli) printConfig() {
	cfg := c.cfg.Config
	values := []struct{ key, value string }{
		{"data_dir", cfg.DataDir},
		{"storage", cfg.Storage},
		{"history_size", strconv.Itoa(cfg.HistorySize)},
		{"default_filter", cfg.DefaultFilter},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", strconv.FormatBool(cfg.LogTimestamps)},
		{"log_caller", strconv.FormatBool(cfg.LogCaller)},
	}

	fmt.Fprintln(c.out, "Configuration:")
	for _, v := range values {
		fmt.Fprintf(c.out, "  %-15s %-30s (%s)\n", v.key, v.value, c.cfg.Sources[v.key])
	}
	fmt.Fprintln(c.out)
	if len(c.cfg.Files) == 0 {
		fmt.Fprintln(c.out, "Config files: none")
		return
	}
	fmt.Fprintln(c.out, "Config files:")
	for _, f := range c.cfg.Files {
		fmt.Fprintf(c.out, "  %s\n", f)
	}
}

// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/store"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries the loaded configuration and the standard streams through
// the subcommands.
type cli struct {
	cfg    *config.ConfigWithSources
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Run executes the tasks CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c := &cli{
		cfg:    cws,
		logger: logging.New(errOut, cws.Config.LoggingOptions()),
		in:     in,
		out:    out,
		errOut: errOut,
	}

	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// Determine the subcommand; the default lists tasks.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "ls", "list":
		return c.lsCommand(ctx, remainingArgs)
	case "add":
		return c.addCommand(ctx, remainingArgs)
	case "done":
		return c.doneCommand(ctx, remainingArgs, true)
	case "reopen", "undone":
		return c.doneCommand(ctx, remainingArgs, false)
	case "edit":
		return c.editCommand(ctx, remainingArgs)
	case "postpone":
		return c.postponeCommand(ctx, remainingArgs)
	case "rm", "delete":
		return c.rmCommand(ctx, remainingArgs)
	case "clear-completed":
		return c.clearCompletedCommand(ctx, remainingArgs)
	case "clear":
		return c.clearCommand(ctx, remainingArgs)
	case "categories", "category", "cat":
		return c.categoriesCommand(ctx, remainingArgs)
	case "export":
		return c.exportCommand(ctx, remainingArgs)
	case "shell":
		return c.shellCommand(ctx, remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openApp opens the configured store and loads the task list.
// The caller must Close the returned app.
func (c *cli) openApp(ctx context.Context, logger *log.Logger) (*app.App, error) {
	cfg := c.cfg.Config
	st, err := store.Open(cfg.StorageKind(), cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage, err)
	}
	a, err := app.Open(ctx, st, app.Options{
		HistorySize: cfg.HistorySize,
		Logger:      logger,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

// withApp opens the app, runs fn and closes the app.
func (c *cli) withApp(ctx context.Context, fn func(*app.App) error) (err error) {
	a, err := c.openApp(ctx, c.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

// tuiCommand launches the TUI. Logs go to a file in the data directory
// while the TUI owns the terminal.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks tui", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	filterArg := fs.String("filter", c.cfg.Config.DefaultFilter, "Initial filter (all, active, completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := todo.ParseFilter(*filterArg)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(c.cfg.Config.DataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, c.cfg.Config.LoggingOptions())

	a, err := c.openApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.RunTUI(ctx, a, ui.WithFilter(filter))
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.out, "tasks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasks - a task list with undo")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls                    List tasks grouped by due date (default command)")
	fmt.Fprintln(w, "  add <title>           Add a task")
	fmt.Fprintln(w, "  done <id>             Mark a task completed")
	fmt.Fprintln(w, "  reopen <id>           Mark a task not completed")
	fmt.Fprintln(w, "  edit <id>             Change a task")
	fmt.Fprintln(w, "  postpone <id> [days]  Move the due date forward (default 1 day)")
	fmt.Fprintln(w, "  rm <id>               Delete a task")
	fmt.Fprintln(w, "  clear-completed       Delete all completed tasks")
	fmt.Fprintln(w, "  clear                 Delete all tasks")
	fmt.Fprintln(w, "  categories [sub]      Manage categories (ls, add, rm, color, rename, move)")
	fmt.Fprintln(w, "  export                Print tasks and categories as JSON or YAML")
	fmt.Fprintln(w, "  shell                 Interactive prompt with undo and redo")
	fmt.Fprintln(w, "  tui                   Launch terminal UI")
	fmt.Fprintln(w, "  config                Show the effective configuration")
	fmt.Fprintln(w, "  version               Show version information")
	fmt.Fprintln(w, "  help                  Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task IDs may be shortened to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -filter string    all, active, or completed")
	fmt.Fprintln(w, "  -category string  Category ID or name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add and Edit Options:")
	fmt.Fprintln(w, "  -desc string      Description")
	fmt.Fprintln(w, "  -category string  Category ID or name")
	fmt.Fprintln(w, "  -due string       Due date (YYYY-MM-DD, today, tomorrow, or +N days)")
	fmt.Fprintln(w, "  -note string      Note")
	fmt.Fprintln(w, "  -title string     New title (edit only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string    json or yaml (default json)")
	fmt.Fprintln(w, "  -o string         Write to a file instead of stdout")
}

// parseArgs parses flags that may appear before, between or after the
// positional arguments, and returns the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

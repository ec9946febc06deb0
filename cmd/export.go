package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/todo"
)

// exportDocument is the shape written by the export command.
type exportDocument struct {
	Tasks      []todo.Task     `json:"tasks" yaml:"tasks"`
	Categories []todo.Category `json:"categories" yaml:"categories"`
}

// exportCommand writes all tasks and categories as JSON or YAML.
func (c *cli) exportCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks export", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	format := fs.String("format", "json", "Output format (json, yaml)")
	output := fs.String("o", "", "Write to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return c.withApp(ctx, func(a *app.App) error {
		doc := exportDocument{Tasks: a.Tasks(), Categories: a.Categories()}
		if doc.Tasks == nil {
			doc.Tasks = []todo.Task{}
		}

		w := c.out
		if *output != "" {
			f, err := os.Create(*output)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := writeExport(w, *format, doc); err != nil {
			return err
		}
		if *output != "" {
			fmt.Fprintf(c.errOut, "Exported %d %s to %s\n", len(doc.Tasks), plural(len(doc.Tasks), "task"), *output)
		}
		return nil
	})
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid format %q, must be one of: json, yaml", format)
	}
}

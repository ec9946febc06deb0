package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/colorutil"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/utils"
)

// lsCommand lists tasks grouped by due date.
func (c *cli) lsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks ls", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	filterArg := fs.String("filter", c.cfg.Config.DefaultFilter, "Filter (all, active, completed)")
	categoryArg := fs.String("category", "", "Category ID or name")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}
	filter, err := todo.ParseFilter(*filterArg)
	if err != nil {
		return err
	}

	return c.withApp(ctx, func(a *app.App) error {
		category := app.AllCategories
		if *categoryArg != "" {
			if category, err = a.ResolveCategory(*categoryArg); err != nil {
				return err
			}
		}
		printTasks(c.out, a, a.Visible(category, filter), time.Now())
		return nil
	})
}

// printTasks writes tasks in date sections, one line per task.
func printTasks(w io.Writer, a *app.App, tasks []todo.Task, now time.Time) {
	sections := app.GroupByDate(tasks, now).Sections()
	if len(sections) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", s.Title, len(s.Tasks))
		for _, t := range s.Tasks {
			fmt.Fprintln(w, formatTask(a, t))
		}
	}
}

func formatTask(a *app.App, t todo.Task) string {
	var b strings.Builder
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	fmt.Fprintf(&b, "  %s %s %s", utils.ShortID(t.ID), check, t.Title)
	if name := a.CategoryName(t.Category); name != "" {
		b.WriteString("  ")
		b.WriteString(colorutil.Badge(name, a.CategoryColor(t.Category)))
	}
	if t.DueDate != "" {
		fmt.Fprintf(&b, "  due %s", t.DueDate)
	}
	if t.Note != "" {
		fmt.Fprintf(&b, "  (%s)", t.Note)
	}
	return b.String()
}

// taskFlags are the flags shared by add and edit.
type taskFlags struct {
	desc     *string
	category *string
	due      *string
	note     *string
}

func newTaskFlags(fs *flag.FlagSet) taskFlags {
	return taskFlags{
		desc:     fs.String("desc", "", "Description"),
		category: fs.String("category", "", "Category ID or name"),
		due:      fs.String("due", "", "Due date (YYYY-MM-DD, today, tomorrow, or +N days)"),
		note:     fs.String("note", "", "Note"),
	}
}

// addCommand adds a task.
func (c *cli) addCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	tf := newTaskFlags(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	title := joinArgs(rest)
	if title == "" {
		return errors.New("usage: tasks add <title> [-desc text] [-category name] [-due date] [-note text]")
	}
	due, err := parseDue(*tf.due, time.Now())
	if err != nil {
		return err
	}

	return c.withApp(ctx, func(a *app.App) error {
		nt := app.NewTask{
			Title:       title,
			Description: *tf.desc,
			DueDate:     due,
			Note:        *tf.note,
		}
		if *tf.category != "" {
			if nt.Category, err = a.ResolveCategory(*tf.category); err != nil {
				return err
			}
		}
		task, err := a.AddTask(ctx, nt)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Added %s %s\n", utils.ShortID(task.ID), task.Title)
		return nil
	})
}

// doneCommand sets the completion flag of a task.
func (c *cli) doneCommand(ctx context.Context, args []string, completed bool) error {
	if len(args) != 1 {
		if completed {
			return errors.New("usage: tasks done <id>")
		}
		return errors.New("usage: tasks reopen <id>")
	}
	return c.withApp(ctx, func(a *app.App) error {
		id, err := a.ResolveID(args[0])
		if err != nil {
			return err
		}
		task, _ := a.Task(id)
		if task.Completed == completed {
			fmt.Fprintf(c.out, "Unchanged %s %s\n", utils.ShortID(task.ID), task.Title)
			return nil
		}
		task, err = a.ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		verb := "Reopened"
		if task.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(c.out, "%s %s %s\n", verb, utils.ShortID(task.ID), task.Title)
		return nil
	})
}

// editCommand changes the fields of a task that were given as flags.
func (c *cli) editCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks edit", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	title := fs.String("title", "", "New title")
	tf := newTaskFlags(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("usage: tasks edit <id> [-title text] [-desc text] [-category name] [-due date] [-note text]")
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return errors.New("nothing to change: give at least one of -title, -desc, -category, -due, -note")
	}
	due, err := parseDue(*tf.due, time.Now())
	if err != nil {
		return err
	}

	return c.withApp(ctx, func(a *app.App) error {
		id, err := a.ResolveID(rest[0])
		if err != nil {
			return err
		}
		category := ""
		if set["category"] {
			if category, err = a.ResolveCategory(*tf.category); err != nil {
				return err
			}
		}
		task, err := a.EditTask(ctx, id, func(t *todo.Task) {
			if set["title"] {
				t.Title = *title
			}
			if set["desc"] {
				t.Description = *tf.desc
			}
			if set["category"] {
				t.Category = category
			}
			if set["due"] {
				t.DueDate = due
			}
			if set["note"] {
				t.Note = *tf.note
			}
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Updated %s %s\n", utils.ShortID(task.ID), task.Title)
		return nil
	})
}

// postponeCommand moves a task's due date forward.
func (c *cli) postponeCommand(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: tasks postpone <id> [days]")
	}
	days := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of days %q", args[1])
		}
		days = n
	}
	return c.withApp(ctx, func(a *app.App) error {
		id, err := a.ResolveID(args[0])
		if err != nil {
			return err
		}
		task, err := a.PostponeTask(ctx, id, days)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Postponed %s %s to %s\n", utils.ShortID(task.ID), task.Title, task.DueDate)
		return nil
	})
}

// rmCommand deletes a task.
func (c *cli) rmCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: tasks rm <id>")
	}
	return c.withApp(ctx, func(a *app.App) error {
		id, err := a.ResolveID(args[0])
		if err != nil {
			return err
		}
		task, _ := a.Task(id)
		if err := a.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Deleted %s %s\n", utils.ShortID(task.ID), task.Title)
		return nil
	})
}

// clearCompletedCommand removes all completed tasks.
func (c *cli) clearCompletedCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return c.withApp(ctx, func(a *app.App) error {
		n, err := a.ClearCompleted(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Cleared %d completed %s\n", n, plural(n, "task"))
		return nil
	})
}

// clearCommand removes every task. It asks for confirmation unless -y is given.
func (c *cli) clearCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks clear", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return c.withApp(ctx, func(a *app.App) error {
		if !a.HasTasks() {
			fmt.Fprintln(c.out, "No tasks to clear.")
			return nil
		}
		if !*yes && !confirm(c.in, c.out, "Delete all tasks? (y/n) ") {
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
		n, err := a.ClearAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Cleared %d %s\n", n, plural(n, "task"))
		return nil
	})
}

// confirm prints prompt and reads a single answer line from in.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	var answer string
	if _, err := fmt.Fscanln(in, &answer); err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// parseDue accepts YYYY-MM-DD, "today", "tomorrow" or "+N" (days from now).
// The empty string clears the due date.
func parseDue(s string, now time.Time) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return "", nil
	case s == "today":
		return now.Format(todo.DateLayout), nil
	case s == "tomorrow":
		return now.AddDate(0, 0, 1).Format(todo.DateLayout), nil
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return "", fmt.Errorf("invalid due date %q", s)
		}
		return now.AddDate(0, 0, n).Format(todo.DateLayout), nil
	case todo.ValidDate(s):
		return s, nil
	}
	return "", fmt.Errorf("invalid due date %q, want YYYY-MM-DD, today, tomorrow, or +N", s)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

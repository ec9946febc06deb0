package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/utils"
)

const shellPrompt = "tasks> "

const shellHelp = `Commands:
  add <title> [@category] [due:YYYY-MM-DD]  Add a task
  done <id>                Toggle completion
  edit <id> <title>        Change the title of a task
  postpone <id> [days]     Move the due date forward
  rm <id>                  Delete a task
  ls [all|active|completed]
  clear-completed          Delete completed tasks
  clear                    Delete all tasks (asks first)
  undo, redo               Step through this session's history
  history                  Show the recorded snapshots
  help                     Show this help
  quit, exit               Leave the shell`

// shellCommand runs an interactive prompt against a single app instance so
// that undo and redo span the whole session.
func (c *cli) shellCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	filter := c.cfg.Config.Filter()
	return c.withApp(ctx, func(a *app.App) error {
		sh := &shell{ctx: ctx, app: a, out: c.out, filter: filter, now: time.Now}
		return sh.run(c.in)
	})
}

type shell struct {
	ctx    context.Context
	app    *app.App
	out    io.Writer
	filter todo.Filter
	now    func() time.Time

	scanner *bufio.Scanner
}

// run reads commands until EOF, quit, or context cancellation.
func (s *shell) run(in io.Reader) error {
	s.scanner = bufio.NewScanner(in)
	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, shellPrompt)
		if !s.scanner.Scan() {
			fmt.Fprintln(s.out)
			return s.scanner.Err()
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		quit, err := s.exec(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// exec runs one command line. It reports true when the shell should exit.
// Errors are shown to the user and do not end the session.
func (s *shell) exec(line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)
	a := s.app

	switch name {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)

	case "ls", "list":
		if len(args) > 0 {
			f, err := todo.ParseFilter(args[0])
			if err != nil {
				return false, err
			}
			s.filter = f
		}
		printTasks(s.out, a, a.Visible(app.AllCategories, s.filter), s.now())

	case "add", "a":
		task, err := a.QuickAdd(s.ctx, rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Added %s %s\n", utils.ShortID(task.ID), task.Title)

	case "done", "toggle", "x":
		id, err := s.resolve(args)
		if err != nil {
			return false, err
		}
		task, err := a.ToggleTask(s.ctx, id)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "%s %s\n", toggledVerb(task), task.Title)

	case "edit", "e":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: edit <id> <title>")
		}
		id, err := a.ResolveID(args[0])
		if err != nil {
			return false, err
		}
		title := strings.Join(args[1:], " ")
		task, err := a.EditTask(s.ctx, id, func(t *todo.Task) { t.Title = title })
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Updated %s %s\n", utils.ShortID(task.ID), task.Title)

	case "postpone", "p":
		if len(args) < 1 || len(args) > 2 {
			return false, fmt.Errorf("usage: postpone <id> [days]")
		}
		days := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return false, fmt.Errorf("invalid number of days %q", args[1])
			}
			days = n
		}
		id, err := a.ResolveID(args[0])
		if err != nil {
			return false, err
		}
		task, err := a.PostponeTask(s.ctx, id, days)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Postponed %s to %s\n", task.Title, task.DueDate)

	case "rm", "delete", "d":
		id, err := s.resolve(args)
		if err != nil {
			return false, err
		}
		task, _ := a.Task(id)
		if err := a.DeleteTask(s.ctx, id); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Deleted %s\n", task.Title)

	case "clear-completed":
		n, err := a.ClearCompleted(s.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Cleared %d completed %s\n", n, plural(n, "task"))

	case "clear":
		if !a.HasTasks() {
			fmt.Fprintln(s.out, "No tasks to clear.")
			return false, nil
		}
		if !s.confirm("Delete all tasks? (y/n) ") {
			fmt.Fprintln(s.out, "Cancelled.")
			return false, nil
		}
		n, err := a.ClearAll(s.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Cleared %d %s\n", n, plural(n, "task"))

	case "undo", "u":
		ok, err := a.Undo(s.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, pick(ok, "Undone.", "Nothing to undo."))

	case "redo", "r":
		ok, err := a.Redo(s.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, pick(ok, "Redone.", "Nothing to redo."))

	case "history", "h":
		entries := a.HistoryEntries()
		if len(entries) == 0 {
			fmt.Fprintln(s.out, "No history yet.")
			return false, nil
		}
		for _, e := range entries {
			marker := " "
			if e.Current {
				marker = "*"
			}
			fmt.Fprintf(s.out, "%s %2d  %s  %d %s\n", marker, e.Index, e.Timestamp.Local().Format(time.TimeOnly), e.TaskCount, plural(e.TaskCount, "task"))
		}

	default:
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	return false, nil
}

func (s *shell) resolve(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected a task ID")
	}
	return s.app.ResolveID(args[0])
}

// confirm reads the next input line as a yes/no answer.
func (s *shell) confirm(prompt string) bool {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func toggledVerb(t todo.Task) string {
	if t.Completed {
		return "Completed"
	}
	return "Reopened"
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

package app

import (
	"context"
	"strings"

	"github.com/nibzard/tasks-go/internal/todo"
)

// ParseQuickAdd splits "title @category due:YYYY-MM-DD" into its parts.
// The category and due tokens may appear anywhere in s.
func ParseQuickAdd(s string) (title, category, due string) {
	var words []string
	for _, f := range strings.Fields(s) {
		switch {
		case len(f) > 1 && strings.HasPrefix(f, "@"):
			category = f[1:]
		case strings.HasPrefix(f, "due:") && len(f) > len("due:"):
			due = strings.TrimPrefix(f, "due:")
		default:
			words = append(words, f)
		}
	}
	return strings.Join(words, " "), category, due
}

// QuickAdd adds a task described by a ParseQuickAdd line. The category may
// be given by anything ResolveCategory accepts.
func (a *App) QuickAdd(ctx context.Context, line string) (todo.Task, error) {
	title, ref, due := ParseQuickAdd(line)
	nt := NewTask{Title: title, DueDate: due}
	if ref != "" {
		id, err := a.ResolveCategory(ref)
		if err != nil {
			return todo.Task{}, err
		}
		nt.Category = id
	}
	return a.AddTask(ctx, nt)
}

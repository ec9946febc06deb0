package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/todo"
)

// NewTask holds the user-supplied fields of a task being created.
type NewTask struct {
	Title       string
	Description string
	Category    string
	DueDate     string
	Note        string
}

// AddTask puts a new task at the front of the list. An empty category
// selects the first category.
func (a *App) AddTask(ctx context.Context, nt NewTask) (todo.Task, error) {
	title := strings.TrimSpace(nt.Title)
	if title == "" {
		return todo.Task{}, ErrEmptyTitle
	}
	if nt.DueDate != "" && !todo.ValidDate(nt.DueDate) {
		return todo.Task{}, fmt.Errorf("invalid due date %q, want YYYY-MM-DD", nt.DueDate)
	}
	category := nt.Category
	if category == "" {
		if len(a.categories) > 0 {
			category = a.categories[0].ID
		}
	} else if todo.FindCategory(a.categories, category) < 0 {
		return todo.Task{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}

	now := a.now().UTC()
	task := todo.Task{
		ID:          todo.NewID(),
		Title:       title,
		Description: strings.TrimSpace(nt.Description),
		Category:    category,
		DueDate:     nt.DueDate,
		Note:        strings.TrimSpace(nt.Note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := make([]todo.Task, 0, len(a.tasks)+1)
	next = append(next, task)
	next = append(next, todo.CloneTasks(a.tasks)...)

	a.logger.Info("Task added", "id", task.ID, "title", task.Title)
	return task, a.commit(ctx, next, "add")
}

// ToggleTask flips the completion flag of a task.
func (a *App) ToggleTask(ctx context.Context, id string) (todo.Task, error) {
	return a.update(ctx, id, "toggle", func(t *todo.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

// EditTask applies edit to a copy of the task. The ID and creation time
// cannot be changed.
func (a *App) EditTask(ctx context.Context, id string, edit func(*todo.Task)) (todo.Task, error) {
	return a.update(ctx, id, "edit", func(t *todo.Task) error {
		edit(t)
		t.Title = strings.TrimSpace(t.Title)
		t.Description = strings.TrimSpace(t.Description)
		if t.Title == "" {
			return ErrEmptyTitle
		}
		if t.DueDate != "" && !todo.ValidDate(t.DueDate) {
			return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", t.DueDate)
		}
		if t.Category != "" && todo.FindCategory(a.categories, t.Category) < 0 {
			return fmt.Errorf("%w: %q", ErrCategoryNotFound, t.Category)
		}
		return nil
	})
}

// PostponeTask moves the due date forward by days, counting from today
// when the task has no due date, and notes the change.
func (a *App) PostponeTask(ctx context.Context, id string, days int) (todo.Task, error) {
	if days <= 0 {
		return todo.Task{}, fmt.Errorf("postpone days must be positive, got %d", days)
	}
	now := a.now()
	return a.update(ctx, id, "postpone", func(t *todo.Task) error {
		from, ok := t.Due(now.Location())
		if !ok {
			from = startOfDay(now)
		}
		t.DueDate = from.AddDate(0, 0, days).Format(todo.DateLayout)
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		t.Note = fmt.Sprintf("Postponed by %d %s", days, unit)
		return nil
	})
}

// DeleteTask removes a task.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	if todo.FindTask(a.tasks, id) < 0 {
		return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	next := make([]todo.Task, 0, len(a.tasks))
	for _, t := range a.tasks {
		if t.ID != id {
			next = append(next, t.Clone())
		}
	}
	a.logger.Info("Task deleted", "id", id)
	return a.commit(ctx, next, "delete")
}

// ClearCompleted removes every completed task and returns how many were
// removed. Nothing is recorded when no task is completed.
func (a *App) ClearCompleted(ctx context.Context) (int, error) {
	next := make([]todo.Task, 0, len(a.tasks))
	for _, t := range a.tasks {
		if !t.Completed {
			next = append(next, t.Clone())
		}
	}
	removed := len(a.tasks) - len(next)
	if removed == 0 {
		return 0, nil
	}
	a.logger.Info("Cleared completed tasks", "count", removed)
	return removed, a.commit(ctx, next, "clear-completed")
}

// ClearAll removes every task and returns how many were removed.
// Nothing is recorded when the list is already empty.
func (a *App) ClearAll(ctx context.Context) (int, error) {
	removed := len(a.tasks)
	if removed == 0 {
		return 0, nil
	}
	a.logger.Info("Cleared all tasks", "count", removed)
	return removed, a.commit(ctx, []todo.Task{}, "clear-all")
}

// update copies the list, applies fn to the task with the given ID and
// commits the result. Nothing changes if fn returns an error.
func (a *App) update(ctx context.Context, id, action string, fn func(*todo.Task) error) (todo.Task, error) {
	i := todo.FindTask(a.tasks, id)
	if i < 0 {
		return todo.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	next := todo.CloneTasks(a.tasks)
	orig := next[i]
	if err := fn(&next[i]); err != nil {
		return todo.Task{}, err
	}
	next[i].ID = orig.ID
	next[i].CreatedAt = orig.CreatedAt
	next[i].UpdatedAt = a.now().UTC()

	a.logger.Info("Task updated", "action", action, "id", id)
	return next[i].Clone(), a.commit(ctx, next, action)
}

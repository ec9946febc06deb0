// Package app owns the live task list and routes every edit through the
// undo history and the store.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/history"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/store"
	"github.com/nibzard/tasks-go/internal/todo"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyTitle       = errors.New("title is empty")
	ErrEmptyName        = errors.New("category name is empty")
	ErrAmbiguousID      = errors.New("ambiguous id")
)

// AllCategories selects tasks of every category in Visible.
const AllCategories = "all"

// Options configures an App.
type Options struct {
	HistorySize int
	Logger      *log.Logger
	Now         func() time.Time
}

// App is the application state controller. It is not safe for concurrent
// use; the CLI shell and the TUI each drive it from a single goroutine.
type App struct {
	store   store.Store
	history *history.History
	logger  *log.Logger
	now     func() time.Time

	tasks      []todo.Task
	categories []todo.Category
}

// Open loads the stored lists and starts a new, empty history. A non-empty
// stored task list becomes the first history entry. Missing or malformed
// data falls back to an empty task list and the default categories; a
// malformed payload is first copied to its backup key so the next save
// does not destroy it.
func Open(ctx context.Context, st store.Store, opts Options) (*App, error) {
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}
	a := &App{
		store:  st,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.history = history.New(opts.HistorySize, history.WithClock(a.now))

	tasks, err := store.LoadTasks(ctx, st)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		tasks = []todo.Task{}
	case errors.Is(err, store.ErrMalformed):
		if err := a.backup(ctx, store.KeyTasks, err); err != nil {
			return nil, err
		}
		tasks = []todo.Task{}
	default:
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	categories, err := store.LoadCategories(ctx, st)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		categories = todo.DefaultCategories()
	case errors.Is(err, store.ErrMalformed):
		if err := a.backup(ctx, store.KeyCategories, err); err != nil {
			return nil, err
		}
		categories = todo.DefaultCategories()
	default:
		return nil, fmt.Errorf("load categories: %w", err)
	}

	a.tasks = tasks
	a.categories = categories
	if len(tasks) > 0 {
		a.history.Push(tasks)
	}
	a.logger.Debug("Opened task list", "tasks", len(tasks), "categories", len(categories))
	return a, nil
}

// backup preserves the unreadable value of key before it is replaced by a
// fresh list. Open fails if the copy cannot be written.
func (a *App) backup(ctx context.Context, key string, cause error) error {
	bk, err := store.Backup(ctx, a.store, key)
	if err != nil {
		return fmt.Errorf("stored %s are unreadable (%v) and could not be backed up: %w", key, cause, err)
	}
	a.logger.Warn("Stored data is unreadable, starting fresh", "key", key, "backup", bk, "err", cause)
	return nil
}

// Close closes the underlying store.
func (a *App) Close() error {
	return a.store.Close()
}

// Tasks returns a copy of the task list.
func (a *App) Tasks() []todo.Task {
	return todo.CloneTasks(a.tasks)
}

// Task returns the task with the given ID.
func (a *App) Task(id string) (todo.Task, bool) {
	i := todo.FindTask(a.tasks, id)
	if i < 0 {
		return todo.Task{}, false
	}
	return a.tasks[i].Clone(), true
}

// Categories returns a copy of the category list.
func (a *App) Categories() []todo.Category {
	return todo.CloneCategories(a.categories)
}

// Visible returns the tasks in categoryID (or AllCategories) that pass f.
func (a *App) Visible(categoryID string, f todo.Filter) []todo.Task {
	out := make([]todo.Task, 0, len(a.tasks))
	for _, t := range a.tasks {
		if categoryID != "" && categoryID != AllCategories && t.Category != categoryID {
			continue
		}
		if !f.Matches(t) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

// HasTasks reports whether the list is non-empty.
func (a *App) HasTasks() bool {
	return len(a.tasks) > 0
}

// HasCompleted reports whether any task is completed.
func (a *App) HasCompleted() bool {
	for _, t := range a.tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

// CanUndo reports whether Undo would change the task list.
func (a *App) CanUndo() bool {
	return a.history.CanUndo()
}

// CanRedo reports whether Redo would change the task list.
func (a *App) CanRedo() bool {
	return a.history.CanRedo()
}

// HistoryEntries describes the session history, oldest first.
func (a *App) HistoryEntries() []history.Entry {
	return a.history.Entries()
}

// Undo restores the previous task list. It reports false if there was
// nothing to undo.
func (a *App) Undo(ctx context.Context) (bool, error) {
	tasks, ok := a.history.Undo()
	if !ok {
		return false, nil
	}
	a.tasks = tasks
	a.logger.Debug("Undo", "index", a.history.Index(), "tasks", len(tasks))
	return true, a.persistTasks(ctx)
}

// Redo reapplies the next task list. It reports false if there was
// nothing to redo.
func (a *App) Redo(ctx context.Context) (bool, error) {
	tasks, ok := a.history.Redo()
	if !ok {
		return false, nil
	}
	a.tasks = tasks
	a.logger.Debug("Redo", "index", a.history.Index(), "tasks", len(tasks))
	return true, a.persistTasks(ctx)
}

// ResolveID expands a unique ID prefix to a full task ID.
func (a *App) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrTaskNotFound)
	}
	if todo.FindTask(a.tasks, prefix) >= 0 {
		return prefix, nil
	}
	match := ""
	for _, t := range a.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrTaskNotFound, prefix)
	}
	return match, nil
}

// commit makes tasks the authoritative list, records it in the history
// and persists it. The in-memory change stands even if persisting fails.
func (a *App) commit(ctx context.Context, tasks []todo.Task, action string) error {
	a.tasks = tasks
	a.history.Push(tasks)
	a.logger.Debug("Recorded edit", "action", action, "tasks", len(tasks), "history", a.history.Len())
	return a.persistTasks(ctx)
}

func (a *App) persistTasks(ctx context.Context) error {
	if err := store.SaveTasks(ctx, a.store, a.tasks); err != nil {
		a.logger.Error("Failed to save tasks", "err", err)
		return err
	}
	return nil
}

func (a *App) persistCategories(ctx context.Context) error {
	if err := store.SaveCategories(ctx, a.store, a.categories); err != nil {
		a.logger.Error("Failed to save categories", "err", err)
		return err
	}
	return nil
}

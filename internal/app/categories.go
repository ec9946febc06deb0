package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/colorutil"
	"github.com/nibzard/tasks-go/internal/todo"
)

// Category edits are persisted but not recorded in the undo history.

// AddCategory appends a new category. An empty color selects
// todo.DefaultCategoryColor.
func (a *App) AddCategory(ctx context.Context, name, color string) (todo.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return todo.Category{}, ErrEmptyName
	}
	if color == "" {
		color = todo.DefaultCategoryColor
	}
	c, err := colorutil.Normalize(color)
	if err != nil {
		return todo.Category{}, err
	}
	cat := todo.Category{ID: todo.NewID(), Name: name, Color: c}
	a.categories = append(todo.CloneCategories(a.categories), cat)
	a.logger.Info("Category added", "id", cat.ID, "name", cat.Name)
	return cat, a.persistCategories(ctx)
}

// DeleteCategory removes a category. Tasks in it keep their category ID
// and render with the fallback color.
func (a *App) DeleteCategory(ctx context.Context, id string) error {
	i := todo.FindCategory(a.categories, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	next := make([]todo.Category, 0, len(a.categories)-1)
	next = append(next, a.categories[:i]...)
	next = append(next, a.categories[i+1:]...)
	a.categories = next
	a.logger.Info("Category deleted", "id", id)
	return a.persistCategories(ctx)
}

// SetCategoryColor changes the color of a category.
func (a *App) SetCategoryColor(ctx context.Context, id, color string) error {
	c, err := colorutil.Normalize(color)
	if err != nil {
		return err
	}
	return a.updateCategory(ctx, id, func(cat *todo.Category) { cat.Color = c })
}

// RenameCategory changes the name of a category.
func (a *App) RenameCategory(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return a.updateCategory(ctx, id, func(cat *todo.Category) { cat.Name = name })
}

// MoveCategory moves the category at index from to index to, shifting the
// categories in between.
func (a *App) MoveCategory(ctx context.Context, from, to int) error {
	n := len(a.categories)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move category: index out of range (have %d categories)", n)
	}
	if from == to {
		return nil
	}
	next := todo.CloneCategories(a.categories)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]todo.Category{moved}, next[to:]...)...)
	a.categories = next
	a.logger.Info("Category moved", "id", moved.ID, "from", from, "to", to)
	return a.persistCategories(ctx)
}

// CategoryIndex returns the position of a category, or -1.
func (a *App) CategoryIndex(id string) int {
	return todo.FindCategory(a.categories, id)
}

// CategoryColor returns the color of a category, or
// todo.DefaultCategoryColor if it does not exist.
func (a *App) CategoryColor(id string) string {
	if i := todo.FindCategory(a.categories, id); i >= 0 {
		return a.categories[i].Color
	}
	return todo.DefaultCategoryColor
}

// CategoryName returns the name of a category, or "" if it does not exist.
func (a *App) CategoryName(id string) string {
	if i := todo.FindCategory(a.categories, id); i >= 0 {
		return a.categories[i].Name
	}
	return ""
}

// ResolveCategory finds a category by exact ID, then by case-insensitive
// name, then by unique ID prefix, then by unique name prefix.
func (a *App) ResolveCategory(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrCategoryNotFound)
	}
	if todo.FindCategory(a.categories, ref) >= 0 {
		return ref, nil
	}
	for _, c := range a.categories {
		if strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	match := ""
	for _, c := range a.categories {
		if strings.HasPrefix(c.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
			}
			match = c.ID
		}
	}
	if match != "" {
		return match, nil
	}
	lower := strings.ToLower(ref)
	for _, c := range a.categories {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
			}
			match = c.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrCategoryNotFound, ref)
	}
	return match, nil
}

func (a *App) updateCategory(ctx context.Context, id string, fn func(*todo.Category)) error {
	i := todo.FindCategory(a.categories, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	next := todo.CloneCategories(a.categories)
	fn(&next[i])
	a.categories = next
	a.logger.Info("Category updated", "id", id)
	return a.persistCategories(ctx)
}

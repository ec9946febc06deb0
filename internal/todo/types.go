// Package todo defines tasks and categories and validates their stored form.
package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout of Task.DueDate.
const DateLayout = "2006-01-02"

// DefaultCategoryColor is used for new categories and for tasks whose
// category no longer exists.
const DefaultCategoryColor = "#4F658F"

// Task represents a single task in the list.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	Category    string    `json:"category" yaml:"category"`
	DueDate     string    `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	// Every field is a value type. Fields that add reference types
	// (slices, maps, pointers) must be copied here.
	return t
}

// Due parses the due date as a calendar day in loc.
// It returns false if the task has no due date or the date is malformed.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// CloneTasks returns a deep copy of tasks. A nil input yields nil and an
// empty input yields an empty, non-nil slice.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// FindTask returns the index of the task with the given ID, or -1.
func FindTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Category groups tasks and gives them a color.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DefaultCategories returns the categories used when none are stored.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "High Priority", Color: "#EF4444"},
		{ID: "2", Name: "Medium Priority", Color: "#F59E0B"},
		{ID: "3", Name: "Low Priority", Color: "#10B981"},
	}
}

// CloneCategories returns a copy of categories.
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FindCategory returns the index of the category with the given ID, or -1.
func FindCategory(categories []Category, id string) int {
	for i := range categories {
		if categories[i].ID == id {
			return i
		}
	}
	return -1
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a filter name. The empty string means FilterActive.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterActive:
		return FilterActive, nil
	case FilterCompleted, "done":
		return FilterCompleted, nil
	case FilterAll:
		return FilterAll, nil
	default:
		return "", fmt.Errorf("invalid filter %q, must be one of: all, active, completed", s)
	}
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterActive:
		return !t.Completed
	default:
		return true
	}
}

// NewID returns a new random identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

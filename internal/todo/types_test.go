package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCloneTasks(t *testing.T) {
	if got := CloneTasks(nil); got != nil {
		t.Errorf("CloneTasks(nil) = %v, want nil", got)
	}

	empty := CloneTasks([]Task{})
	if empty == nil || len(empty) != 0 {
		t.Errorf("CloneTasks(empty) = %#v, want non-nil empty slice", empty)
	}

	orig := []Task{{ID: "a", Title: "one"}, {ID: "b", Title: "two"}}
	cp := CloneTasks(orig)
	cp[0].Title = "changed"
	if orig[0].Title != "one" {
		t.Errorf("mutating the copy changed the original: %q", orig[0].Title)
	}
	if len(cp) != len(orig) || cp[1] != orig[1] {
		t.Errorf("CloneTasks = %v, want %v", cp, orig)
	}
}

func TestCloneCategories(t *testing.T) {
	orig := DefaultCategories()
	cp := CloneCategories(orig)
	cp[0].Name = "changed"
	if orig[0].Name != "High Priority" {
		t.Errorf("mutating the copy changed the original: %q", orig[0].Name)
	}
	if CloneCategories(nil) != nil {
		t.Error("CloneCategories(nil) should be nil")
	}
}

func TestFind(t *testing.T) {
	tasks := []Task{{ID: "a"}, {ID: "b"}}
	if got := FindTask(tasks, "b"); got != 1 {
		t.Errorf("FindTask(b) = %d, want 1", got)
	}
	if got := FindTask(tasks, "z"); got != -1 {
		t.Errorf("FindTask(z) = %d, want -1", got)
	}
	if got := FindCategory(DefaultCategories(), "3"); got != 2 {
		t.Errorf("FindCategory(3) = %d, want 2", got)
	}
	if got := FindCategory(nil, "3"); got != -1 {
		t.Errorf("FindCategory on nil = %d, want -1", got)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterActive, false},
		{"active", FilterActive, false},
		{"ALL", FilterAll, false},
		{" completed ", FilterCompleted, false},
		{"done", FilterCompleted, false},
		{"pending", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: "1"}
	done := Task{ID: "2", Completed: true}

	tests := []struct {
		filter   Filter
		open     bool
		complete bool
	}{
		{FilterAll, true, true},
		{FilterActive, true, false},
		{FilterCompleted, false, true},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(open); got != tt.open {
			t.Errorf("%s.Matches(open) = %v, want %v", tt.filter, got, tt.open)
		}
		if got := tt.filter.Matches(done); got != tt.complete {
			t.Errorf("%s.Matches(done) = %v, want %v", tt.filter, got, tt.complete)
		}
	}
}

func TestTaskDue(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)

	due, ok := Task{DueDate: "2024-02-29"}.Due(loc)
	if !ok {
		t.Fatal("Due() = false for valid date")
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, loc)
	if !due.Equal(want) {
		t.Errorf("Due() = %v, want %v", due, want)
	}

	for _, s := range []string{"", "2024-02-30", "tomorrow"} {
		if _, ok := (Task{DueDate: s}).Due(loc); ok {
			t.Errorf("Due() = true for %q", s)
		}
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID() returned %q and %q", a, b)
	}
}

func TestIsZero(t *testing.T) {
	if !(&Task{}).IsZero() {
		t.Error("empty task should be zero")
	}
	if (&Task{ID: "x"}).IsZero() {
		t.Error("task with ID should not be zero")
	}
}

func TestValidateTasks(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	valid := Task{ID: "a", Title: "ok", Category: "1", CreatedAt: now, UpdatedAt: now}

	tests := []struct {
		name     string
		tasks    []Task
		wantErr  bool
		wantPath string
	}{
		{name: "empty", tasks: []Task{}},
		{name: "valid", tasks: []Task{valid, {ID: "b", Title: "due", DueDate: "2024-04-01", CreatedAt: now, UpdatedAt: now}}},
		{name: "missing id", tasks: []Task{{Title: "x", CreatedAt: now, UpdatedAt: now}}, wantErr: true, wantPath: "[0].id"},
		{name: "empty title", tasks: []Task{valid, {ID: "b", CreatedAt: now, UpdatedAt: now}}, wantErr: true, wantPath: "[1].title"},
		{name: "bad date", tasks: []Task{{ID: "a", Title: "x", DueDate: "03/01/2024", CreatedAt: now, UpdatedAt: now}}, wantErr: true, wantPath: "[0].due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateTasks(tt.tasks)
			if !result.UsedSchema {
				t.Errorf("expected schema validation, warnings: %v", result.Warnings)
			}
			err := result.Err()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTasks() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %v is not a *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestValidateCategories(t *testing.T) {
	tests := []struct {
		name    string
		cats    []Category
		wantErr bool
	}{
		{"defaults", DefaultCategories(), false},
		{"lower-case color", []Category{{ID: "x", Name: "X", Color: "#abcdef"}}, false},
		{"short color", []Category{{ID: "x", Name: "X", Color: "#abc"}}, true},
		{"no hash", []Category{{ID: "x", Name: "X", Color: "abcdef"}}, true},
		{"no name", []Category{{ID: "x", Color: "#abcdef"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategories(tt.cats).Err()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategories() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMinimal(t *testing.T) {
	if err := validateTaskMinimal(&Task{ID: "a", Title: "x", DueDate: "2024-01-01"}, "[0]"); err != nil {
		t.Errorf("validateTaskMinimal(valid) = %v", err)
	}
	err := validateTaskMinimal(&Task{ID: "a", Title: " "}, "[3]")
	if err == nil || err.Path != "[3].title" {
		t.Errorf("validateTaskMinimal(blank title) = %v, want path [3].title", err)
	}
	err = validateCategoryMinimal(&Category{ID: "a", Name: "n", Color: "red"}, "[0]")
	if err == nil || err.Path != "[0].color" {
		t.Errorf("validateCategoryMinimal(bad color) = %v, want path [0].color", err)
	}
}

func TestValidationResultErr(t *testing.T) {
	var nilResult *ValidationResult
	if nilResult.Err() != nil {
		t.Error("nil result should have no error")
	}
	r := newResult()
	if r.Err() != nil {
		t.Error("valid result should have no error")
	}
}

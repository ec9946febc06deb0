package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks-go/internal/colorutil"
	"github.com/nibzard/tasks-go/internal/utils"
)

const tasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed", "category", "created_at", "updated_at"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "completed": {"type": "boolean"},
      "category": {"type": "string"},
      "due_date": {"type": "string", "format": "date"},
      "note": {"type": "string"},
      "created_at": {"type": "string", "format": "date-time"},
      "updated_at": {"type": "string", "format": "date-time"}
    },
    "additionalProperties": false
  }
}`

const categoriesSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "color"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
    },
    "additionalProperties": false
  }
}`

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Err joins all validation errors, or returns nil if the result is valid.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

var (
	tasksSchemaOnce      = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("tasks.schema.json", tasksSchema) })
	categoriesSchemaOnce = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("categories.schema.json", categoriesSchema) })
)

func compileSchema(url, src string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// ValidateTasks validates a task list.
func ValidateTasks(tasks []Task) *ValidationResult {
	result := newResult()
	schema, err := tasksSchemaOnce()
	if validateWithSchema(result, schema, err, tasks) {
		return result
	}
	for i := range tasks {
		if verr := validateTaskMinimal(&tasks[i], fmt.Sprintf("[%d]", i)); verr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, verr)
		}
	}
	return result
}

// ValidateCategories validates a category list.
func ValidateCategories(categories []Category) *ValidationResult {
	result := newResult()
	schema, err := categoriesSchemaOnce()
	if validateWithSchema(result, schema, err, categories) {
		return result
	}
	for i := range categories {
		if verr := validateCategoryMinimal(&categories[i], fmt.Sprintf("[%d]", i)); verr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, verr)
		}
	}
	return result
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

// validateWithSchema runs schema validation and reports whether it was
// performed. When it returns false the caller falls back to minimal checks.
func validateWithSchema(result *ValidationResult, schema *jsonschema.Schema, compileErr error, v any) bool {
	if compileErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema: %v", compileErr))
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		return false
	}

	// Round-trip through JSON so the schema sees the stored form.
	data, err := json.Marshal(v)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to marshal for validation: %w", err),
		})
		return true
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal for validation: %w", err),
		})
		return true
	}

	result.UsedSchema = true
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return true
}

func validateTaskMinimal(task *Task, path string) *ValidationError {
	if task.ID == "" {
		return &ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")}
	}
	if strings.TrimSpace(task.Title) == "" {
		return &ValidationError{Path: path + ".title", Err: fmt.Errorf("missing required field")}
	}
	if task.DueDate != "" && !ValidDate(task.DueDate) {
		return &ValidationError{
			Path: path + ".due_date",
			Err:  fmt.Errorf("invalid date %q, want YYYY-MM-DD", task.DueDate),
		}
	}
	return nil
}

func validateCategoryMinimal(cat *Category, path string) *ValidationError {
	if cat.ID == "" {
		return &ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")}
	}
	if strings.TrimSpace(cat.Name) == "" {
		return &ValidationError{Path: path + ".name", Err: fmt.Errorf("missing required field")}
	}
	if !colorutil.Valid(cat.Color) {
		return &ValidationError{
			Path: path + ".color",
			Err:  fmt.Errorf("invalid color %q, want #rrggbb", cat.Color),
		}
	}
	return nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nibzard/tasks-go/internal/todo"
)

// LoadTasks reads the task list. It returns ErrNotFound if none was saved
// and ErrMalformed if the stored data cannot be decoded or is invalid.
func LoadTasks(ctx context.Context, s Store) ([]todo.Task, error) {
	var tasks []todo.Task
	if err := load(ctx, s, KeyTasks, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	if err := todo.ValidateTasks(tasks).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", KeyTasks, ErrMalformed, err)
	}
	return tasks, nil
}

// SaveTasks writes the task list.
func SaveTasks(ctx context.Context, s Store, tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return save(ctx, s, KeyTasks, tasks)
}

// LoadCategories reads the category list, with the same errors as LoadTasks.
func LoadCategories(ctx context.Context, s Store) ([]todo.Category, error) {
	var categories []todo.Category
	if err := load(ctx, s, KeyCategories, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []todo.Category{}
	}
	if err := todo.ValidateCategories(categories).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", KeyCategories, ErrMalformed, err)
	}
	return categories, nil
}

// SaveCategories writes the category list.
func SaveCategories(ctx context.Context, s Store, categories []todo.Category) error {
	if categories == nil {
		categories = []todo.Category{}
	}
	return save(ctx, s, KeyCategories, categories)
}

// BackupKey is the key a malformed value of key is preserved under.
func BackupKey(key string) string {
	return key + ".bak"
}

// Backup copies the raw value stored under key to BackupKey(key), replacing
// any earlier backup, and returns the backup key.
func Backup(ctx context.Context, s Store, key string) (string, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	bk := BackupKey(key)
	if err := s.Put(ctx, bk, data); err != nil {
		return "", fmt.Errorf("backup %s: %w", key, err)
	}
	return bk, nil
}

func load(ctx context.Context, s Store, key string, out any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %w", key, ErrMalformed, err)
	}
	return nil
}

// save encodes v with 2-space indentation and a trailing newline.
func save(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	data = append(data, '\n')
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

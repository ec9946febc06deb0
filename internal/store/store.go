// Package store persists the live task and category lists to local storage.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stable storage keys.
const (
	KeyTasks      = "todos"
	KeyCategories = "categories"
)

// Kind selects a storage backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("not found")
	// ErrMalformed wraps decode and validation failures of stored data.
	ErrMalformed = errors.New("malformed data")
)

// Store is a small key-value store for serialized lists.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// ParseKind parses a backend name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindFile, "json":
		return KindFile, nil
	case KindSQLite, "sqlite3":
		return KindSQLite, nil
	case KindMemory, "mem":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("invalid storage %q, must be one of: file, sqlite, memory", s)
	}
}

// Open opens the backend of the given kind rooted at dir.
func Open(kind Kind, dir string) (Store, error) {
	switch kind {
	case KindFile, "":
		return NewFileStore(dir)
	case KindSQLite:
		return OpenSQLite(dir)
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}

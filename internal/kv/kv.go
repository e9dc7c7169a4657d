// Package kv provides the key-value slots the note collection is persisted in.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("kv: key not found")

// Store is a flat namespace of byte slots.
type Store interface {
	// Get returns ErrNotFound when the key has never been set.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Open returns the backend named by kind ("file" or "sqlite") rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case "", "file":
		return NewFileStore(dir)
	case "sqlite":
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", kind)
	}
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}

package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an object does not exist at the given key.
var ErrNotFound = errors.New("object not found")

// StorageError wraps a storage failure with the operation and key involved.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new storage error
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

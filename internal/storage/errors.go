package storage

import "errors"

// Static error definitions for better error handling.
var (
	// ErrClosed indicates an operation on a database that was already closed.
	ErrClosed = errors.New("storage is closed")
	// ErrEmptyPath indicates that no database path was given.
	ErrEmptyPath = errors.New("database path cannot be empty")
	// ErrEmptyKey indicates a key/value operation without a key.
	ErrEmptyKey = errors.New("key cannot be empty")
)

package bus

import "errors"

// Static error definitions for better error handling.
var (
	// ErrClosed indicates the bus was used after Close.
	ErrClosed = errors.New("bus is closed")
	// ErrNoHandler indicates a command was invoked before a handler was registered.
	ErrNoHandler = errors.New("no command handler registered")
	// ErrHandlerRegistered indicates a second command handler.
	ErrHandlerRegistered = errors.New("command handler already registered")
)

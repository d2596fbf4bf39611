package songcache

import "errors"

// Static error definitions for better error handling.
var (
	// ErrClosed indicates the service was used after Close.
	ErrClosed = errors.New("song cache is closed")
)

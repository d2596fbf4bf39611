package player

import "errors"

var (
	// ErrScopeCanceled indicates that a result arrived after its scope was left.
	ErrScopeCanceled = errors.New("scope canceled")
	// ErrEmptyQueue indicates that there is nothing to play.
	ErrEmptyQueue = errors.New("nothing to play")
	// ErrIndexOutOfRange indicates a start index outside the queue.
	ErrIndexOutOfRange = errors.New("song index out of range")
)

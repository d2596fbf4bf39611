package app

import "errors"

var (
	// errQuit ends playback on user request.
	errQuit = errors.New("quit")
	// ErrSeekUsage indicates a seek control without a position.
	ErrSeekUsage = errors.New("usage: s <seconds>")
	// ErrInvalidPosition indicates a seek position that is not a non-negative number.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrUnknownControl indicates a control line that is not recognized.
	ErrUnknownControl = errors.New("unknown control (n, p, pause, r, s <seconds>, q)")
)

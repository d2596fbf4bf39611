package engine

import "errors"

// Static error definitions for better error handling.
var (
	// ErrStopped indicates a command sent to an engine that is not running.
	ErrStopped = errors.New("engine is stopped")
	// ErrMalformedCommand indicates an envelope that is not {command: {callbackId, ...}}.
	ErrMalformedCommand = errors.New("malformed command envelope")
	// ErrUnknownCommand indicates a command name the engine does not implement.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyPlaylist indicates a navigation command on an empty queue.
	ErrEmptyPlaylist = errors.New("playlist is empty")
	// ErrSongIndexOutOfRange indicates a jump past the queue bounds.
	ErrSongIndexOutOfRange = errors.New("song index out of range")
	// ErrNothingLoaded indicates a playback command before any track was loaded.
	ErrNothingLoaded = errors.New("no track is loaded")
	// ErrNoPlayableSong indicates every queue entry failed to load.
	ErrNoPlayableSong = errors.New("no playable song in playlist")
	// ErrSourceUnavailable indicates the remote service returned no playback URL.
	ErrSourceUnavailable = errors.New("playback source unavailable")
)

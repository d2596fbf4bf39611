package catalog

import "errors"

// Static error definitions for better error handling.
var (
	// ErrPlaylistNotFound indicates a playlist response without a playlist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrEmptyKeyword indicates a search without a keyword.
	ErrEmptyKeyword = errors.New("search keyword is empty")
)

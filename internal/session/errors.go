package session

import "errors"

// Static error definitions for better error handling.
var (
	// ErrMalformedCredential indicates that a pasted credential is not a JSON array of cookies.
	ErrMalformedCredential = errors.New("malformed credential")
)

package channel

import "errors"

// Static error definitions for better error handling.
var (
	// ErrReplyTimeout indicates the engine did not answer within the reply timeout.
	ErrReplyTimeout = errors.New("timed out waiting for engine reply")
	// ErrChannelClosed indicates the channel was closed before a reply arrived.
	ErrChannelClosed = errors.New("engine channel is closed")
	// ErrInvalidCommandData indicates command data that does not serialize to a JSON object.
	ErrInvalidCommandData = errors.New("command data must be a JSON object")
	// ErrEngineRejected indicates the engine answered with an error.
	ErrEngineRejected = errors.New("engine rejected command")
)

package audio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownEvent indicates a broadcast type this package does not know.
var ErrUnknownEvent = errors.New("unknown engine event")

// Event is a decoded broadcast payload: *Status, *PlayPosition, *LoadAudio,
// *LoadingAudio or *PlayStatus.
type Event interface {
	// EventType returns the broadcast type the payload travels under.
	EventType() string
}

func (*Status) EventType() string       { return EventSyncStatus }
func (*PlayPosition) EventType() string { return EventPlayPosition }
func (*LoadAudio) EventType() string    { return EventLoadAudio }
func (*LoadingAudio) EventType() string { return EventLoadingAudio }
func (*PlayStatus) EventType() string   { return EventPlayStatus }

// Decode converts the broadcast into its typed payload.
func (b Broadcast) Decode() (Event, error) {
	var event Event

	switch b.Type {
	case EventSyncStatus:
		event = new(Status)
	case EventPlayPosition:
		event = new(PlayPosition)
	case EventLoadAudio:
		event = new(LoadAudio)
	case EventLoadingAudio:
		event = new(LoadingAudio)
	case EventPlayStatus:
		event = new(PlayStatus)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, b.Type)
	}

	if len(b.Data) > 0 {
		if err := json.Unmarshal(b.Data, event); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", b.Type, err)
		}
	}

	return event, nil
}

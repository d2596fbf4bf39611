package audio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBroadcast_Decode tests decoding of every broadcast type.
func TestBroadcast_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		broadcast   Broadcast
		expected    Event
		expectedErr error
		errorMsg    string
	}{
		{
			name:      "sync status",
			broadcast: Broadcast{Type: EventSyncStatus, Data: json.RawMessage(`{"trackId":7,"durationMs":1000,"positionMs":10,"isPlaying":true,"songIndex":2,"playlistLength":3}`)},
			expected: &Status{
				TrackID:        7,
				DurationMs:     1000,
				PositionMs:     10,
				IsPlaying:      true,
				SongIndex:      2,
				PlaylistLength: 3,
			},
		},
		{
			name:      "play position",
			broadcast: Broadcast{Type: EventPlayPosition, Data: json.RawMessage(`{"positionMs":1500}`)},
			expected:  &PlayPosition{PositionMs: 1500},
		},
		{
			name:      "load audio",
			broadcast: Broadcast{Type: EventLoadAudio, Data: json.RawMessage(`{"trackId":1,"durationMs":2000}`)},
			expected:  &LoadAudio{TrackID: 1, DurationMs: 2000},
		},
		{
			name:      "loading audio",
			broadcast: Broadcast{Type: EventLoadingAudio, Data: json.RawMessage(`{"trackId":1}`)},
			expected:  &LoadingAudio{TrackID: 1},
		},
		{
			name:      "play status without data",
			broadcast: Broadcast{Type: EventPlayStatus},
			expected:  &PlayStatus{},
		},
		{
			name:        "unknown type",
			broadcast:   Broadcast{Type: "volume"},
			expectedErr: ErrUnknownEvent,
		},
		{
			name:      "malformed payload",
			broadcast: Broadcast{Type: EventPlayPosition, Data: json.RawMessage(`{"positionMs":"x"}`)},
			errorMsg:  "failed to decode playPosition event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			event, err := tt.broadcast.Decode()

			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.errorMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, event)
				assert.Equal(t, tt.broadcast.Type, event.EventType())
			}
		})
	}
}

package player

//go:generate $MOCKGEN -source=controller.go -destination=mocks/controller_mock.go

import (
	"context"

	"github.com/oshokin/ncm-player/internal/audio"
)

// Controller is the part of the engine channel the view models drive.
type Controller interface {
	// Subscribe registers handler for engine broadcasts and returns an unsubscribe function.
	Subscribe(handler func(audio.Broadcast)) func()
	// SyncStatus asks the engine for its state.
	SyncStatus(ctx context.Context) (*audio.Status, error)
	// SetPlaylist replaces the engine queue.
	SetPlaylist(ctx context.Context, songs []audio.PlaylistItem) error
	// JumpToSong plays the queue entry at index.
	JumpToSong(ctx context.Context, index int) error
}

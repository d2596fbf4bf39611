package player

import (
	"context"
	"fmt"

	"github.com/oshokin/ncm-player/internal/audio"
	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/service/catalog"
	"github.com/oshokin/ncm-player/internal/service/songcache"
	"github.com/oshokin/ncm-player/internal/utils"
)

// PlaylistView is a loaded playlist with its songs in playlist order.
type PlaylistView struct {
	// Playlist is the playlist header.
	Playlist *ncm.Playlist
	// Songs holds the tracks the remote service still knows.
	Songs []*ncm.SongDetail
	// TotalDurationMs is the sum of the song durations.
	TotalDurationMs int64
}

// PlaylistLoader loads playlists for display.
type PlaylistLoader struct {
	catalog catalog.Service
	songs   songcache.Service
}

// NewPlaylistLoader creates and returns a new instance of PlaylistLoader.
func NewPlaylistLoader(catalogService catalog.Service, songs songcache.Service) *PlaylistLoader {
	return &PlaylistLoader{
		catalog: catalogService,
		songs:   songs,
	}
}

// Load fetches playlist id and the details of its tracks.
// It returns ErrScopeCanceled when scope was left while a fetch was in flight.
func (l *PlaylistLoader) Load(ctx context.Context, scope *Scope, id int64) (*PlaylistView, error) {
	playlist, err := l.catalog.PlaylistDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist %d: %w", id, err)
	}

	if scope.Canceled() {
		return nil, ErrScopeCanceled
	}

	details, err := l.songs.GetSongDetails(ctx, playlist.IDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load songs of playlist %d: %w", id, err)
	}

	if scope.Canceled() {
		return nil, ErrScopeCanceled
	}

	view := &PlaylistView{
		Playlist: playlist,
		Songs:    make([]*ncm.SongDetail, 0, len(details)),
	}

	for _, song := range details {
		if song == nil {
			continue
		}

		view.Songs = append(view.Songs, song)
		view.TotalDurationMs += song.Duration
	}

	return view, nil
}

// Play replaces the engine queue with songs and starts the song at index.
// With shuffle the queue order is randomized and playback starts wherever that song landed.
func Play(ctx context.Context, controller Controller, songs []*ncm.SongDetail, index int, shuffle bool) error {
	if len(songs) == 0 {
		return ErrEmptyQueue
	}

	if index < 0 || index >= len(songs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(songs))
	}

	items := make([]audio.PlaylistItem, len(songs))
	for i, song := range songs {
		items[i] = audio.PlaylistItem{
			TrackID:   song.ID,
			Duration:  song.Duration,
			OrigOrder: i,
		}
	}

	start := index

	if shuffle {
		items = utils.Shuffled(items)

		for i, item := range items {
			if item.OrigOrder == index {
				start = i

				break
			}
		}
	}

	if err := controller.SetPlaylist(ctx, items); err != nil {
		return fmt.Errorf("failed to set playlist: %w", err)
	}

	if err := controller.JumpToSong(ctx, start); err != nil {
		return fmt.Errorf("failed to start song: %w", err)
	}

	return nil
}

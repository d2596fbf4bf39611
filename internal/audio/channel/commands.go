package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oshokin/ncm-player/internal/audio"
)

// SetCookie hands the cookie header to the engine for its own requests.
func (c *Channel) SetCookie(ctx context.Context, cookie string) error {
	_, err := c.Send(ctx, audio.CmdSetCookie, audio.SetCookieData{Cookie: cookie})

	return err
}

// SetPlaylist replaces the engine queue and stops playback.
func (c *Channel) SetPlaylist(ctx context.Context, songs []audio.PlaylistItem) error {
	if songs == nil {
		songs = []audio.PlaylistItem{}
	}

	_, err := c.Send(ctx, audio.CmdSetPlaylist, audio.SetPlaylistData{Songs: songs})

	return err
}

// JumpToSong starts playing the queue entry at index.
func (c *Channel) JumpToSong(ctx context.Context, index int) error {
	_, err := c.Send(ctx, audio.CmdJumpToSong, audio.JumpToSongData{SongIndex: index})

	return err
}

// NextSong advances to the next queue entry, wrapping at the end.
func (c *Channel) NextSong(ctx context.Context) error {
	_, err := c.Send(ctx, audio.CmdNextSong, nil)

	return err
}

// PrevSong moves to the previous queue entry, wrapping at the start.
func (c *Channel) PrevSong(ctx context.Context) error {
	_, err := c.Send(ctx, audio.CmdPrevSong, nil)

	return err
}

// PauseAudio pauses playback.
func (c *Channel) PauseAudio(ctx context.Context) error {
	_, err := c.Send(ctx, audio.CmdPauseAudio, nil)

	return err
}

// ResumeAudio resumes playback.
func (c *Channel) ResumeAudio(ctx context.Context) error {
	_, err := c.Send(ctx, audio.CmdResumeAudio, nil)

	return err
}

// SeekAudio moves the playback position to positionMs.
func (c *Channel) SeekAudio(ctx context.Context, positionMs int64) error {
	_, err := c.Send(ctx, audio.CmdSeekAudio, audio.SeekAudioData{Position: positionMs})

	return err
}

// SyncStatus asks the engine for its state. The engine also broadcasts it to subscribers.
func (c *Channel) SyncStatus(ctx context.Context) (*audio.Status, error) {
	data, err := c.Send(ctx, audio.CmdSyncStatus, nil)
	if err != nil {
		return nil, err
	}

	var status audio.Status
	if err = json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to decode engine status: %w", err)
	}

	return &status, nil
}

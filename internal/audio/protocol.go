package audio

import "encoding/json"

// Event names on the engine link.
const (
	// ReplyEvent carries command replies correlated by callback id.
	ReplyEvent = "on_audio_thread_message"
	// BroadcastEvent carries unsolicited engine events.
	BroadcastEvent = "on-audio-thread-event"
)

// Command names understood by the engine.
const (
	CmdInitEngine  = "initEngine"
	CmdSetCookie   = "setCookie"
	CmdSetPlaylist = "setPlaylist"
	CmdJumpToSong  = "jumpToSong"
	CmdNextSong    = "nextSong"
	CmdPrevSong    = "prevSong"
	CmdPauseAudio  = "pauseAudio"
	CmdResumeAudio = "resumeAudio"
	CmdSeekAudio   = "seekAudio"
	CmdSyncStatus  = "syncStatus"
)

// Broadcast types emitted by the engine.
const (
	EventLoadingAudio = "loadingAudio"
	EventLoadAudio    = "loadAudio"
	EventPlayStatus   = "playStatus"
	EventPlayPosition = "playPosition"
	EventSyncStatus   = "syncStatus"
)

// CallbackIDField is the correlation field inside a command body.
const CallbackIDField = "callbackId"

// Reply answers exactly one command.
type Reply struct {
	// CallbackID echoes the id of the command being answered.
	CallbackID string `json:"callbackId"`
	// Data is the command result, if any.
	Data json.RawMessage `json:"data,omitempty"`
	// Error is set when the engine rejected the command.
	Error string `json:"error,omitempty"`
}

// Broadcast is an engine event delivered to every subscriber.
type Broadcast struct {
	// Type names the event.
	Type string `json:"type"`
	// Data is the event payload.
	Data json.RawMessage `json:"data,omitempty"`
}

// PlaylistItem is one entry of the engine queue.
type PlaylistItem struct {
	// TrackID is the remote track id.
	TrackID int64 `json:"trackId"`
	// LocalFile is played instead of a remote source when set.
	LocalFile string `json:"localFile,omitempty"`
	// Duration is the track length in milliseconds.
	Duration int64 `json:"duration"`
	// OrigOrder is the position of the item before shuffling.
	OrigOrder int `json:"origOrder"`
}

// SetCookieData is the body of CmdSetCookie.
type SetCookieData struct {
	Cookie string `json:"cookie"`
}

// SetPlaylistData is the body of CmdSetPlaylist.
type SetPlaylistData struct {
	Songs []PlaylistItem `json:"songs"`
}

// JumpToSongData is the body of CmdJumpToSong.
type JumpToSongData struct {
	SongIndex int `json:"songIndex"`
}

// SeekAudioData is the body of CmdSeekAudio.
type SeekAudioData struct {
	// Position is the target position in milliseconds.
	Position int64 `json:"position"`
}

// LoadingAudio is the payload of EventLoadingAudio.
type LoadingAudio struct {
	TrackID int64 `json:"trackId"`
}

// LoadAudio is the payload of EventLoadAudio.
type LoadAudio struct {
	TrackID    int64 `json:"trackId"`
	DurationMs int64 `json:"durationMs"`
}

// PlayStatus is the payload of EventPlayStatus.
type PlayStatus struct {
	IsPlaying bool `json:"isPlaying"`
}

// PlayPosition is the payload of EventPlayPosition.
type PlayPosition struct {
	PositionMs int64 `json:"positionMs"`
}

// Status is the full engine state, returned by CmdSyncStatus and broadcast as EventSyncStatus.
type Status struct {
	TrackID        int64 `json:"trackId"`
	DurationMs     int64 `json:"durationMs"`
	PositionMs     int64 `json:"positionMs"`
	IsPlaying      bool  `json:"isPlaying"`
	SongIndex      int   `json:"songIndex"`
	PlaylistLength int   `json:"playlistLength"`
}

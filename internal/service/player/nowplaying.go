package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/oshokin/ncm-player/internal/audio"
	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/songcache"
)

// State is a snapshot of the now-playing view.
type State struct {
	// TrackID is the current track, zero when nothing was loaded.
	TrackID int64
	// DurationMs is the length of the current track.
	DurationMs int64
	// PositionMs is the playback position.
	PositionMs int64
	// IsPlaying reports whether audio is running.
	IsPlaying bool
	// Song is the detail of TrackID once it was looked up.
	Song *ncm.SongDetail
}

// NowPlaying follows engine broadcasts and keeps the current State.
type NowPlaying struct {
	controller Controller
	songs      songcache.Service
	onChange   func(State)

	mu          sync.Mutex
	state       State
	trackScope  *Scope
	unsubscribe func()
	closed      bool
	ctx         context.Context //nolint:containedctx // Lookups outlive the event callback.
	cancel      context.CancelFunc
	lookups     sync.WaitGroup
	// applied counts broadcasts applied so far.
	applied uint64
}

// NewNowPlaying creates a view that reports every change to onChange. onChange may be nil.
func NewNowPlaying(controller Controller, songs songcache.Service, onChange func(State)) *NowPlaying {
	if onChange == nil {
		onChange = func(State) {}
	}

	return &NowPlaying{
		controller: controller,
		songs:      songs,
		onChange:   onChange,
		trackScope: NewScope(),
	}
}

// Start subscribes to engine events and then asks the engine for its state,
// so no event emitted after the status snapshot is missed.
// The snapshot is dropped when a broadcast arrived first, since it is at least as new.
func (n *NowPlaying) Start(ctx context.Context) error {
	n.mu.Lock()
	if n.unsubscribe != nil || n.closed {
		n.mu.Unlock()

		return nil
	}

	n.ctx, n.cancel = context.WithCancel(context.WithoutCancel(ctx))
	n.unsubscribe = n.controller.Subscribe(n.handle)
	seen := n.applied
	n.mu.Unlock()

	status, err := n.controller.SyncStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync engine status: %w", err)
	}

	n.mu.Lock()

	if n.applied != seen {
		n.mu.Unlock()
		logger.Debug(ctx, "Engine status reply superseded by broadcasts")

		return nil
	}

	n.update(status)
	state := n.state
	n.mu.Unlock()

	n.onChange(state)

	return nil
}

// State returns the current snapshot.
func (n *NowPlaying) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.state
}

// Close unsubscribes and drops pending song lookups.
func (n *NowPlaying) Close() {
	n.mu.Lock()

	if n.unsubscribe != nil {
		n.unsubscribe()
		n.cancel()

		n.unsubscribe = nil
	}

	n.trackScope.Cancel()
	n.closed = true
	n.mu.Unlock()

	n.lookups.Wait()
}

func (n *NowPlaying) handle(broadcast audio.Broadcast) {
	event, err := broadcast.Decode()
	if err != nil {
		logger.Debugf(n.ctx, "Ignoring engine event: %v", err)

		return
	}

	n.mu.Lock()
	n.applied++
	n.update(event)
	state := n.state
	n.mu.Unlock()

	n.onChange(state)
}

// update folds event into the state. Caller holds mu.
func (n *NowPlaying) update(event audio.Event) {
	switch e := event.(type) {
	case *audio.Status:
		n.setTrack(e.TrackID)
		n.state.DurationMs = e.DurationMs
		n.state.PositionMs = e.PositionMs
		n.state.IsPlaying = e.IsPlaying
	case *audio.PlayPosition:
		n.state.PositionMs = e.PositionMs
	case *audio.LoadAudio:
		n.setTrack(e.TrackID)
		n.state.DurationMs = e.DurationMs
	case *audio.LoadingAudio:
		n.setTrack(e.TrackID)
	case *audio.PlayStatus:
		n.state.IsPlaying = e.IsPlaying
	}
}

// setTrack switches to trackID and starts its lookup. Caller holds mu.
func (n *NowPlaying) setTrack(trackID int64) {
	if trackID == n.state.TrackID {
		return
	}

	n.trackScope.Cancel()

	n.state.TrackID = trackID
	n.state.Song = nil
	n.state.PositionMs = 0

	if trackID == 0 || n.closed {
		return
	}

	scope := NewScope()
	n.trackScope = scope

	n.lookups.Go(func() {
		n.lookup(scope, trackID)
	})
}

func (n *NowPlaying) lookup(scope *Scope, trackID int64) {
	songs, err := n.songs.GetSongDetails(n.ctx, []int64{trackID})
	if err != nil {
		logger.WarnKV(n.ctx, "Failed to look up the current song", "track_id", trackID, "error", err)

		return
	}

	n.mu.Lock()

	if scope.Canceled() || len(songs) == 0 || songs[0] == nil {
		n.mu.Unlock()

		return
	}

	n.state.Song = songs[0]
	state := n.state
	n.mu.Unlock()

	n.onChange(state)
}

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/ncm-player/internal/audio"
	"github.com/oshokin/ncm-player/internal/audio/bus"
	"github.com/oshokin/ncm-player/internal/logger"
)

// Link is the engine side of the bus.
type Link interface {
	// Emit publishes payload under event.
	Emit(event string, payload any) error
	// Handle registers the command handler.
	Handle(handler bus.CommandHandler) (func(), error)
}

const (
	// DefaultTick is the interval between position broadcasts.
	DefaultTick = time.Second
	// inboxSize bounds queued commands before senders wait.
	inboxSize = 64
)

// Engine is the audio engine actor. All playback state is owned by its goroutine.
type Engine struct {
	link     Link
	resolver SourceResolver
	output   Output
	identity *Identity
	tick     time.Duration

	inbox      chan json.RawMessage
	done       chan struct{}
	stopOnce   sync.Once
	cancel     context.CancelFunc
	unregister func()
	running    sync.WaitGroup

	playlist   []audio.PlaylistItem
	index      int
	trackID    int64
	durationMs int64
	loaded     bool
	isPlaying  bool
}

// Option customizes an Engine.
type Option func(*Engine)

// WithOutput replaces the default ClockOutput.
func WithOutput(output Output) Option {
	return func(e *Engine) {
		e.output = output
	}
}

// WithTick sets the position broadcast interval.
func WithTick(tick time.Duration) Option {
	return func(e *Engine) {
		if tick > 0 {
			e.tick = tick
		}
	}
}

// New creates an engine. identity receives the cookie from setCookie; it may be nil.
func New(link Link, resolver SourceResolver, identity *Identity, options ...Option) *Engine {
	if identity == nil {
		identity = NewIdentity()
	}

	e := &Engine{
		link:     link,
		resolver: resolver,
		identity: identity,
		tick:     DefaultTick,
		inbox:    make(chan json.RawMessage, inboxSize),
		done:     make(chan struct{}),
	}

	for _, option := range options {
		option(e)
	}

	if e.output == nil {
		e.output = NewClockOutput(nil)
	}

	return e
}

// Start registers the engine on the link and runs the actor until Close or ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	unregister, err := e.link.Handle(e.enqueue)
	if err != nil {
		return fmt.Errorf("failed to register engine: %w", err)
	}

	runCtx, cancel := context.WithCancel(logger.WithName(ctx, "engine"))

	e.unregister = unregister
	e.cancel = cancel

	e.running.Go(func() {
		e.run(runCtx)
	})

	return nil
}

// Close stops the actor and waits for it. Queued commands are dropped unanswered.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		close(e.done)

		if e.unregister != nil {
			e.unregister()
		}

		if e.cancel != nil {
			e.cancel()
		}
	})

	e.running.Wait()
}

func (e *Engine) enqueue(ctx context.Context, envelope json.RawMessage) error {
	select {
	case <-e.done:
		return ErrStopped
	default:
	}

	select {
	case e.inbox <- envelope:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.done:
			return
		case envelope := <-e.inbox:
			e.dispatch(ctx, envelope)
		case <-ticker.C:
			e.onTick(ctx)
		}
	}
}

// dispatch executes one envelope and replies exactly once when a callback id is present.
func (e *Engine) dispatch(ctx context.Context, envelope json.RawMessage) {
	command, callbackID, body, err := parseEnvelope(envelope)
	if err != nil {
		logger.Warnf(ctx, "Dropping command: %v", err)

		if callbackID != "" {
			e.emit(ctx, audio.ReplyEvent, audio.Reply{CallbackID: callbackID, Error: err.Error()})
		}

		return
	}

	logger.DebugKV(ctx, "Engine command", "command", command, "callback_id", callbackID)

	reply := audio.Reply{CallbackID: callbackID}

	result, err := e.execute(ctx, command, body)
	if err != nil {
		reply.Error = err.Error()
	} else if result != nil {
		data, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			reply.Error = marshalErr.Error()
		} else {
			reply.Data = data
		}
	}

	e.emit(ctx, audio.ReplyEvent, reply)
}

func (e *Engine) execute(ctx context.Context, command string, body json.RawMessage) (any, error) {
	switch command {
	case audio.CmdInitEngine:
		return nil, nil
	case audio.CmdSetCookie:
		var data audio.SetCookieData
		if err := decodeBody(body, &data); err != nil {
			return nil, err
		}

		e.identity.Set(data.Cookie)

		return nil, nil
	case audio.CmdSetPlaylist:
		var data audio.SetPlaylistData
		if err := decodeBody(body, &data); err != nil {
			return nil, err
		}

		e.setPlaylist(ctx, data.Songs)

		return nil, nil
	case audio.CmdJumpToSong:
		var data audio.JumpToSongData
		if err := decodeBody(body, &data); err != nil {
			return nil, err
		}

		return nil, e.jump(ctx, data.SongIndex)
	case audio.CmdNextSong:
		return nil, e.step(ctx, 1)
	case audio.CmdPrevSong:
		return nil, e.step(ctx, -1)
	case audio.CmdPauseAudio:
		e.pause(ctx)

		return nil, nil
	case audio.CmdResumeAudio:
		return nil, e.resume(ctx)
	case audio.CmdSeekAudio:
		var data audio.SeekAudioData
		if err := decodeBody(body, &data); err != nil {
			return nil, err
		}

		return nil, e.seek(ctx, data.Position)
	case audio.CmdSyncStatus:
		status := e.status()
		e.broadcast(ctx, audio.EventSyncStatus, status)

		return status, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (e *Engine) setPlaylist(ctx context.Context, songs []audio.PlaylistItem) {
	e.stop(ctx)

	e.playlist = songs
	e.index = 0
}

func (e *Engine) jump(ctx context.Context, index int) error {
	if len(e.playlist) == 0 {
		return ErrEmptyPlaylist
	}

	if index < 0 || index >= len(e.playlist) {
		return fmt.Errorf("%w: %d of %d", ErrSongIndexOutOfRange, index, len(e.playlist))
	}

	e.index = index

	return e.load(ctx)
}

// step moves by delta positions, wrapping at both ends.
func (e *Engine) step(ctx context.Context, delta int) error {
	if len(e.playlist) == 0 {
		return ErrEmptyPlaylist
	}

	e.index = wrap(e.index+delta, len(e.playlist))

	return e.load(ctx)
}

// load plays the entry at the current index. Entries that fail are skipped
// until one loads or every entry was tried.
func (e *Engine) load(ctx context.Context) error {
	for range len(e.playlist) {
		item := e.playlist[e.index]

		e.broadcast(ctx, audio.EventLoadingAudio, audio.LoadingAudio{TrackID: item.TrackID})

		err := e.loadItem(ctx, item)
		if err == nil {
			e.trackID = item.TrackID
			e.durationMs = item.Duration
			e.loaded = true
			e.isPlaying = true

			e.output.Play()

			e.broadcast(ctx, audio.EventLoadAudio, audio.LoadAudio{TrackID: item.TrackID, DurationMs: item.Duration})
			e.broadcast(ctx, audio.EventPlayStatus, audio.PlayStatus{IsPlaying: true})

			return nil
		}

		if errors.Is(err, context.Canceled) {
			return err
		}

		logger.WarnKV(ctx, "Skipping unplayable song", "track_id", item.TrackID, "error", err)

		e.index = wrap(e.index+1, len(e.playlist))
	}

	e.stop(ctx)

	return ErrNoPlayableSong
}

func (e *Engine) loadItem(ctx context.Context, item audio.PlaylistItem) error {
	source := item.LocalFile

	if source == "" {
		resolved, err := e.resolver.Resolve(ctx, item.TrackID)
		if err != nil {
			return err
		}

		source = resolved
	}

	return e.output.Load(ctx, source, item.Duration)
}

func (e *Engine) stop(ctx context.Context) {
	wasPlaying := e.isPlaying

	e.output.Pause()

	e.trackID = 0
	e.durationMs = 0
	e.loaded = false
	e.isPlaying = false

	if wasPlaying {
		e.broadcast(ctx, audio.EventPlayStatus, audio.PlayStatus{IsPlaying: false})
	}
}

func (e *Engine) pause(ctx context.Context) {
	if e.isPlaying {
		e.output.Pause()
		e.isPlaying = false
	}

	e.broadcast(ctx, audio.EventPlayStatus, audio.PlayStatus{IsPlaying: false})
}

func (e *Engine) resume(ctx context.Context) error {
	if !e.loaded {
		return ErrNothingLoaded
	}

	if !e.isPlaying {
		e.output.Play()
		e.isPlaying = true
	}

	e.broadcast(ctx, audio.EventPlayStatus, audio.PlayStatus{IsPlaying: true})

	return nil
}

func (e *Engine) seek(ctx context.Context, positionMs int64) error {
	if !e.loaded {
		return ErrNothingLoaded
	}

	positionMs = max(positionMs, 0)
	if e.durationMs > 0 {
		positionMs = min(positionMs, e.durationMs)
	}

	e.output.Seek(positionMs)
	e.broadcast(ctx, audio.EventPlayPosition, audio.PlayPosition{PositionMs: positionMs})

	return nil
}

// onTick broadcasts the position and advances when the track has ended.
func (e *Engine) onTick(ctx context.Context) {
	if !e.isPlaying {
		return
	}

	position := e.output.Position()

	if e.durationMs > 0 && position >= e.durationMs {
		if err := e.step(ctx, 1); err != nil {
			logger.Warnf(ctx, "Failed to advance to the next song: %v", err)
		}

		return
	}

	e.broadcast(ctx, audio.EventPlayPosition, audio.PlayPosition{PositionMs: position})
}

func (e *Engine) status() *audio.Status {
	status := &audio.Status{
		TrackID:        e.trackID,
		DurationMs:     e.durationMs,
		IsPlaying:      e.isPlaying,
		SongIndex:      e.index,
		PlaylistLength: len(e.playlist),
	}

	if e.loaded {
		status.PositionMs = e.output.Position()
	}

	return status
}

func (e *Engine) broadcast(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf(ctx, "Failed to serialize %s event: %v", eventType, err)

		return
	}

	e.emit(ctx, audio.BroadcastEvent, audio.Broadcast{Type: eventType, Data: data})
}

func (e *Engine) emit(ctx context.Context, event string, payload any) {
	if err := e.link.Emit(event, payload); err != nil {
		logger.Debugf(ctx, "Failed to emit %s: %v", event, err)
	}
}

// parseEnvelope splits {command: {callbackId, ...}} into its parts.
func parseEnvelope(envelope json.RawMessage) (string, string, json.RawMessage, error) {
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(envelope, &wrapped); err != nil {
		return "", "", nil, fmt.Errorf("%w: %w", ErrMalformedCommand, err)
	}

	if len(wrapped) != 1 {
		return "", "", nil, fmt.Errorf("%w: expected one command, got %d", ErrMalformedCommand, len(wrapped))
	}

	for command, body := range wrapped {
		var header struct {
			CallbackID string `json:"callbackId"`
		}

		if err := json.Unmarshal(body, &header); err != nil {
			return command, "", nil, fmt.Errorf("%w: %w", ErrMalformedCommand, err)
		}

		if header.CallbackID == "" {
			return command, "", nil, fmt.Errorf("%w: missing callback id", ErrMalformedCommand)
		}

		return command, header.CallbackID, body, nil
	}

	return "", "", nil, ErrMalformedCommand
}

func decodeBody(body json.RawMessage, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedCommand, err)
	}

	return nil
}

func wrap(index, length int) int {
	return ((index % length) + length) % length
}

package channel

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/ncm-player/internal/audio"
	"github.com/oshokin/ncm-player/internal/audio/bus"
	mock_channel "github.com/oshokin/ncm-player/internal/audio/channel/mocks"
)

var callbackIDPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-\d+$`)

// received is a command as seen by the fake engine.
type received struct {
	name       string
	callbackID string
	body       map[string]json.RawMessage
}

// fakeEngine records commands and acknowledges initEngine on its own.
type fakeEngine struct {
	bus      *bus.Bus
	commands chan received
}

func newFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()

	e := &fakeEngine{bus: bus.New(), commands: make(chan received, 16)}

	_, err := e.bus.Handle(func(_ context.Context, envelope json.RawMessage) error {
		var wrapped map[string]map[string]json.RawMessage
		if err := json.Unmarshal(envelope, &wrapped); err != nil {
			return err
		}

		for name, body := range wrapped {
			var callbackID string
			if err := json.Unmarshal(body[audio.CallbackIDField], &callbackID); err != nil {
				return err
			}

			if name == audio.CmdInitEngine {
				return e.bus.Emit(audio.ReplyEvent, audio.Reply{CallbackID: callbackID})
			}

			e.commands <- received{name: name, callbackID: callbackID, body: body}
		}

		return nil
	})
	require.NoError(t, err)

	t.Cleanup(e.bus.Close)

	return e
}

func (e *fakeEngine) next(t *testing.T) received {
	t.Helper()

	select {
	case cmd := <-e.commands:
		return cmd
	case <-time.After(5 * time.Second):
		t.Fatal("engine received no command")

		return received{}
	}
}

func (e *fakeEngine) reply(t *testing.T, reply audio.Reply) {
	t.Helper()

	require.NoError(t, e.bus.Emit(audio.ReplyEvent, reply))
}

type result struct {
	data json.RawMessage
	err  error
}

func sendAsync(ctx context.Context, c *Channel, command string, data any) <-chan result {
	out := make(chan result, 1)

	go func() {
		data, err := c.Send(ctx, command, data)
		out <- result{data: data, err: err}
	}()

	return out
}

func await(t *testing.T, results <-chan result) result {
	t.Helper()

	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("call did not return")

		return result{}
	}
}

// TestSend_Envelope tests the command envelope and correlation id format.
func TestSend_Envelope(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	results := sendAsync(context.Background(), c, audio.CmdSetCookie, audio.SetCookieData{Cookie: "MUSIC_U=x"})

	cmd := engine.next(t)
	assert.Equal(t, audio.CmdSetCookie, cmd.name)
	assert.Regexp(t, callbackIDPattern, cmd.callbackID)
	assert.JSONEq(t, `"MUSIC_U=x"`, string(cmd.body["cookie"]))

	engine.reply(t, audio.Reply{CallbackID: cmd.callbackID, Data: json.RawMessage(`{"ok":true}`)})

	r := await(t, results)
	require.NoError(t, r.err)
	assert.JSONEq(t, `{"ok":true}`, string(r.data))
	assert.Zero(t, c.Pending())
}

// TestSend_RepliesOutOfOrder tests that replies are matched by callback id, not arrival order.
func TestSend_RepliesOutOfOrder(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	require.NoError(t, c.Start(context.Background()))

	first := sendAsync(context.Background(), c, "first", nil)
	firstCmd := engine.next(t)

	second := sendAsync(context.Background(), c, "second", nil)
	secondCmd := engine.next(t)

	engine.reply(t, audio.Reply{CallbackID: secondCmd.callbackID, Data: json.RawMessage(`2`)})
	engine.reply(t, audio.Reply{CallbackID: firstCmd.callbackID, Data: json.RawMessage(`1`)})

	assert.Equal(t, json.RawMessage(`1`), await(t, first).data)
	assert.Equal(t, json.RawMessage(`2`), await(t, second).data)
}

// TestSend_Timeout tests that an unanswered call fails and leaves no pending entry.
func TestSend_Timeout(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, 50*time.Millisecond)

	defer c.Close()

	results := sendAsync(context.Background(), c, audio.CmdNextSong, nil)
	cmd := engine.next(t)

	r := await(t, results)
	require.ErrorIs(t, r.err, ErrReplyTimeout)
	assert.Zero(t, c.Pending())

	// A late reply is dropped.
	engine.reply(t, audio.Reply{CallbackID: cmd.callbackID})
}

// TestNew_ReplyTimeoutFallback tests that a channel never waits for a reply without a bound.
func TestNew_ReplyTimeoutFallback(t *testing.T) {
	t.Parallel()

	for _, timeout := range []time.Duration{0, -time.Second} {
		c := New(newFakeEngine(t).bus, timeout)
		assert.Equal(t, DefaultReplyTimeout, c.replyTimeout)
		c.Close()
	}

	c := New(newFakeEngine(t).bus, time.Second)
	assert.Equal(t, time.Second, c.replyTimeout)
	c.Close()
}

// TestSend_ContextCanceled tests that cancellation removes the pending entry.
func TestSend_ContextCanceled(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	require.NoError(t, c.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	results := sendAsync(ctx, c, audio.CmdPauseAudio, nil)

	engine.next(t)
	cancel()

	require.ErrorIs(t, await(t, results).err, context.Canceled)
	assert.Zero(t, c.Pending())
}

// TestClose_FailsPendingCalls tests that Close releases every waiting caller.
func TestClose_FailsPendingCalls(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	require.NoError(t, c.Start(context.Background()))

	results := sendAsync(context.Background(), c, audio.CmdSyncStatus, nil)
	engine.next(t)

	c.Close()
	c.Close()

	require.ErrorIs(t, await(t, results).err, ErrChannelClosed)
	assert.Zero(t, c.Pending())

	_, err := c.Send(context.Background(), audio.CmdNextSong, nil)
	require.ErrorIs(t, err, ErrChannelClosed)
}

// TestStart_Once tests that the engine is initialized a single time.
func TestStart_Once(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		inits int
	)

	b := bus.New()
	defer b.Close()

	_, err := b.Handle(func(_ context.Context, envelope json.RawMessage) error {
		var wrapped map[string]map[string]json.RawMessage
		if err := json.Unmarshal(envelope, &wrapped); err != nil {
			return err
		}

		for name, body := range wrapped {
			if name == audio.CmdInitEngine {
				mu.Lock()
				inits++
				mu.Unlock()
			}

			var callbackID string
			if err := json.Unmarshal(body[audio.CallbackIDField], &callbackID); err != nil {
				return err
			}

			if err := b.Emit(audio.ReplyEvent, audio.Reply{CallbackID: callbackID}); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	c := New(b, time.Minute)
	defer c.Close()

	require.NoError(t, c.NextSong(context.Background()))
	require.NoError(t, c.PrevSong(context.Background()))
	require.NoError(t, c.Start(context.Background()))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, 1, inits)
}

// TestSend_EngineRejected tests that an error reply is surfaced.
func TestSend_EngineRejected(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	results := sendAsync(context.Background(), c, audio.CmdJumpToSong, audio.JumpToSongData{SongIndex: 9})

	cmd := engine.next(t)
	assert.JSONEq(t, `9`, string(cmd.body["songIndex"]))

	engine.reply(t, audio.Reply{CallbackID: cmd.callbackID, Error: "song index out of range"})

	err := await(t, results).err
	require.ErrorIs(t, err, ErrEngineRejected)
	assert.Contains(t, err.Error(), "song index out of range")
}

// TestSend_InvalidData tests that non-object command data is rejected before sending.
func TestSend_InvalidData(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	_, err := c.Send(context.Background(), "custom", 5)
	require.ErrorIs(t, err, ErrInvalidCommandData)
	assert.Zero(t, c.Pending())
}

// TestSend_InvokeFailure tests that a link failure leaves no pending entry.
func TestSend_InvokeFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	link := mock_channel.NewMockLink(ctrl)
	errLink := errors.New("link down")

	link.EXPECT().Listen(audio.ReplyEvent, gomock.Any()).Return(func() {})
	link.EXPECT().Invoke(gomock.Any(), gomock.Any()).Return(errLink)

	c := New(link, time.Minute)
	defer c.Close()

	err := c.Start(context.Background())
	require.ErrorIs(t, err, errLink)
	assert.Zero(t, c.Pending())
}

// TestSubscribe tests ordered delivery to a slow subscriber and idempotent unsubscribe.
func TestSubscribe(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	var (
		mu    sync.Mutex
		types []string
	)

	done := make(chan struct{})

	unsubscribe := c.Subscribe(func(event Event) {
		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()

		types = append(types, event.Type)
		if len(types) == 3 {
			close(done)
		}
	})

	for _, eventType := range []string{audio.EventLoadingAudio, audio.EventLoadAudio, audio.EventPlayStatus} {
		require.NoError(t, engine.bus.Emit(audio.BroadcastEvent, audio.Broadcast{Type: eventType}))
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events were not delivered")
	}

	unsubscribe()
	unsubscribe()

	require.NoError(t, engine.bus.Emit(audio.BroadcastEvent, audio.Broadcast{Type: audio.EventPlayPosition}))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{audio.EventLoadingAudio, audio.EventLoadAudio, audio.EventPlayStatus}, types)
}

// TestSyncStatus tests status decoding.
func TestSyncStatus(t *testing.T) {
	t.Parallel()

	engine := newFakeEngine(t)
	c := New(engine.bus, time.Minute)

	defer c.Close()

	results := make(chan *audio.Status, 1)

	go func() {
		status, err := c.SyncStatus(context.Background())
		assert.NoError(t, err)

		results <- status
	}()

	cmd := engine.next(t)
	assert.Equal(t, audio.CmdSyncStatus, cmd.name)

	engine.reply(t, audio.Reply{
		CallbackID: cmd.callbackID,
		Data:       json.RawMessage(`{"trackId":5,"durationMs":1000,"positionMs":10,"isPlaying":true}`),
	})

	select {
	case status := <-results:
		require.NotNil(t, status)
		assert.Equal(t, int64(5), status.TrackID)
		assert.True(t, status.IsPlaying)
	case <-time.After(5 * time.Second):
		t.Fatal("status was not returned")
	}
}

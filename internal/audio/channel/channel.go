package channel

//go:generate $MOCKGEN -source=channel.go -destination=mocks/channel_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/ncm-player/internal/audio"
	"github.com/oshokin/ncm-player/internal/audio/bus"
	"github.com/oshokin/ncm-player/internal/logger"
)

// DefaultReplyTimeout bounds a command round trip when New is given no timeout.
const DefaultReplyTimeout = 30 * time.Second

// Link is the transport between the channel and the engine.
type Link interface {
	// Invoke delivers a command envelope to the engine.
	Invoke(ctx context.Context, envelope json.RawMessage) error
	// Listen registers handler for event and returns a function that stops it.
	Listen(event string, handler bus.Handler) func()
}

// Event is a broadcast received from the engine.
type Event = audio.Broadcast

// Channel correlates engine commands with their replies.
type Channel struct {
	link         Link
	replyTimeout time.Duration

	mu      sync.Mutex
	pending map[string]chan audio.Reply
	closed  bool
	done    chan struct{}

	startMu sync.Mutex
	started bool

	unlistenReply func()
}

// New creates a channel on link. A non-positive replyTimeout falls back to DefaultReplyTimeout,
// so every call, including the initEngine one Start holds its lock for, ends.
func New(link Link, replyTimeout time.Duration) *Channel {
	if replyTimeout <= 0 {
		replyTimeout = DefaultReplyTimeout
	}

	c := &Channel{
		link:         link,
		replyTimeout: replyTimeout,
		pending:      make(map[string]chan audio.Reply),
		done:         make(chan struct{}),
	}

	c.unlistenReply = link.Listen(audio.ReplyEvent, c.handleReply)

	return c
}

// Start initializes the engine once. Later calls return immediately; a failed start is retried by the next call.
func (c *Channel) Start(ctx context.Context) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.started {
		return nil
	}

	if _, err := c.call(ctx, audio.CmdInitEngine, nil); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	c.started = true

	return nil
}

// Send starts the engine if needed, issues command and waits for its reply data.
func (c *Channel) Send(ctx context.Context, command string, data any) (json.RawMessage, error) {
	if err := c.Start(ctx); err != nil {
		return nil, err
	}

	return c.call(ctx, command, data)
}

// Subscribe registers handler for engine broadcasts. Each subscriber receives
// events in emission order. The returned function may be called any number of times.
func (c *Channel) Subscribe(handler func(Event)) func() {
	return c.link.Listen(audio.BroadcastEvent, func(payload json.RawMessage) {
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			logger.Warnf(context.Background(), "Dropping malformed engine event: %v", err)

			return
		}

		handler(event)
	})
}

// Close stops listening for replies and fails every outstanding call with ErrChannelClosed.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}

	c.closed = true
	clear(c.pending)
	close(c.done)
	c.mu.Unlock()

	c.unlistenReply()
}

// Pending returns the number of calls waiting for a reply.
func (c *Channel) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

func (c *Channel) call(ctx context.Context, command string, data any) (json.RawMessage, error) {
	callbackID := newCallbackID()

	envelope, err := buildEnvelope(command, callbackID, data)
	if err != nil {
		return nil, err
	}

	replies := make(chan audio.Reply, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return nil, ErrChannelClosed
	}

	c.pending[callbackID] = replies
	c.mu.Unlock()

	if err = c.link.Invoke(ctx, envelope); err != nil {
		c.forget(callbackID)

		return nil, fmt.Errorf("failed to send %s: %w", command, err)
	}

	timer := time.NewTimer(c.replyTimeout)
	defer timer.Stop()

	select {
	case reply := <-replies:
		if reply.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrEngineRejected, command, reply.Error)
		}

		return reply.Data, nil
	case <-timer.C:
		c.forget(callbackID)
		logger.WarnKV(ctx, "Engine reply timed out", "command", command, "callback_id", callbackID)

		return nil, fmt.Errorf("%w: %s", ErrReplyTimeout, command)
	case <-ctx.Done():
		c.forget(callbackID)

		return nil, ctx.Err()
	case <-c.done:
		return nil, fmt.Errorf("%w: %s", ErrChannelClosed, command)
	}
}

func (c *Channel) handleReply(payload json.RawMessage) {
	var reply audio.Reply
	if err := json.Unmarshal(payload, &reply); err != nil {
		logger.Warnf(context.Background(), "Dropping malformed engine reply: %v", err)

		return
	}

	c.mu.Lock()
	replies, ok := c.pending[reply.CallbackID]
	delete(c.pending, reply.CallbackID)
	c.mu.Unlock()

	if !ok {
		logger.Debugf(context.Background(), "Dropping reply for unknown callback %s", reply.CallbackID)

		return
	}

	replies <- reply
}

func (c *Channel) forget(callbackID string) {
	c.mu.Lock()
	delete(c.pending, callbackID)
	c.mu.Unlock()
}

// newCallbackID returns a random id with a nanosecond timestamp suffix.
func newCallbackID() string {
	return uuid.NewString() + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

// buildEnvelope wraps data as {command: {callbackId, ...data}}.
func buildEnvelope(command, callbackID string, data any) (json.RawMessage, error) {
	body := make(map[string]json.RawMessage)

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s data: %w", command, err)
		}

		if err = json.Unmarshal(raw, &body); err != nil || body == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCommandData, command)
		}
	}

	id, err := json.Marshal(callbackID)
	if err != nil {
		return nil, err
	}

	body[audio.CallbackIDField] = id

	envelope, err := json.Marshal(map[string]any{command: body})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s envelope: %w", command, err)
	}

	return envelope, nil
}

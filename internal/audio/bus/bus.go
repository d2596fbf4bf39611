package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Handler receives event payloads.
type Handler func(payload json.RawMessage)

// CommandHandler receives command envelopes.
type CommandHandler func(ctx context.Context, envelope json.RawMessage) error

// Bus routes events to listeners and commands to a single handler.
type Bus struct {
	mu        sync.Mutex
	listeners map[string]map[uint64]*listener
	nextID    uint64
	command   CommandHandler
	closed    bool
	// running tracks listener goroutines.
	running sync.WaitGroup
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		listeners: make(map[string]map[uint64]*listener),
	}
}

// Emit serializes payload and queues it for every listener of event.
// Emit never waits for a listener to finish handling.
func (b *Bus) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize %s payload: %w", event, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for _, l := range b.listeners[event] {
		l.push(data)
	}

	return nil
}

// Listen registers handler for event. The returned function stops delivery and
// may be called any number of times.
func (b *Bus) Listen(event string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.nextID
	b.nextID++

	l := newListener(handler)

	if b.listeners[event] == nil {
		b.listeners[event] = make(map[uint64]*listener)
	}

	b.listeners[event][id] = l

	b.running.Go(l.run)

	return func() {
		b.mu.Lock()
		delete(b.listeners[event], id)
		b.mu.Unlock()

		l.stop()
	}
}

// Handle registers the command handler. The returned function unregisters it.
func (b *Bus) Handle(handler CommandHandler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	if b.command != nil {
		return nil, ErrHandlerRegistered
	}

	b.command = handler

	var once sync.Once

	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.command = nil
			b.mu.Unlock()
		})
	}, nil
}

// Invoke delivers a command envelope to the registered handler.
func (b *Bus) Invoke(ctx context.Context, envelope json.RawMessage) error {
	b.mu.Lock()
	closed, handler := b.closed, b.command
	b.mu.Unlock()

	switch {
	case closed:
		return ErrClosed
	case handler == nil:
		return ErrNoHandler
	}

	return handler(ctx, envelope)
}

// Close stops accepting events, lets every listener drain its queue and waits for them.
func (b *Bus) Close() {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()

		return
	}

	b.closed = true

	for _, listeners := range b.listeners {
		for _, l := range listeners {
			l.drain()
		}
	}

	b.listeners = make(map[string]map[uint64]*listener)
	b.command = nil
	b.mu.Unlock()

	b.running.Wait()
}

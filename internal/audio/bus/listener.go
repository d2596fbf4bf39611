package bus

import (
	"encoding/json"
	"sync"
)

// listener delivers queued payloads to one handler in FIFO order.
// The queue is unbounded so a slow handler never blocks the emitter.
type listener struct {
	handler Handler

	mu       sync.Mutex
	queue    []json.RawMessage
	stopped  bool
	draining bool
	signal   chan struct{}
}

func newListener(handler Handler) *listener {
	return &listener{
		handler: handler,
		signal:  make(chan struct{}, 1),
	}
}

func (l *listener) push(payload json.RawMessage) {
	l.mu.Lock()
	if l.stopped || l.draining {
		l.mu.Unlock()

		return
	}

	l.queue = append(l.queue, payload)
	l.mu.Unlock()

	l.wake()
}

// stop drops queued payloads and ends the goroutine after the current delivery.
func (l *listener) stop() {
	l.mu.Lock()
	l.stopped = true
	l.queue = nil
	l.mu.Unlock()

	l.wake()
}

// drain ends the goroutine once the queue is empty.
func (l *listener) drain() {
	l.mu.Lock()
	l.draining = true
	l.mu.Unlock()

	l.wake()
}

func (l *listener) wake() {
	select {
	case l.signal <- struct{}{}:
	default:
	}
}

func (l *listener) run() {
	for {
		l.mu.Lock()

		if l.stopped {
			l.mu.Unlock()

			return
		}

		if len(l.queue) == 0 {
			if l.draining {
				l.mu.Unlock()

				return
			}

			l.mu.Unlock()
			<-l.signal

			continue
		}

		payload := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.handler(payload)
	}
}

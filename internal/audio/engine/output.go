package engine

//go:generate $MOCKGEN -source=output.go -destination=mocks/output_mock.go

import (
	"context"
	"sync"
	"time"
)

// Output plays a loaded source and reports its position.
type Output interface {
	// Load prepares source for playback from position zero, paused.
	Load(ctx context.Context, source string, durationMs int64) error
	// Play starts or resumes playback.
	Play()
	// Pause pauses playback.
	Pause()
	// Seek moves the position to positionMs.
	Seek(positionMs int64)
	// Position returns the current position in milliseconds.
	Position() int64
}

// ClockOutput is an Output that decodes nothing and advances its position by wall clock.
type ClockOutput struct {
	mu         sync.Mutex
	now        func() time.Time
	source     string
	durationMs int64
	playing    bool
	offsetMs   int64
	startedAt  time.Time
}

// NewClockOutput creates a ClockOutput. A nil now uses time.Now.
func NewClockOutput(now func() time.Time) *ClockOutput {
	if now == nil {
		now = time.Now
	}

	return &ClockOutput{now: now}
}

// Load resets the position and remembers source.
func (o *ClockOutput) Load(_ context.Context, source string, durationMs int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.source = source
	o.durationMs = durationMs
	o.playing = false
	o.offsetMs = 0

	return nil
}

// Source returns the loaded source.
func (o *ClockOutput) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.source
}

// Play starts the clock.
func (o *ClockOutput) Play() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.playing {
		return
	}

	o.playing = true
	o.startedAt = o.now()
}

// Pause stops the clock and keeps the position.
func (o *ClockOutput) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.playing {
		return
	}

	o.offsetMs = o.positionLocked()
	o.playing = false
}

// Seek moves the position to positionMs.
func (o *ClockOutput) Seek(positionMs int64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.offsetMs = positionMs
	if o.playing {
		o.startedAt = o.now()
	}
}

// Position returns the current position, capped at the duration when it is known.
func (o *ClockOutput) Position() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.positionLocked()
}

func (o *ClockOutput) positionLocked() int64 {
	position := o.offsetMs
	if o.playing {
		position += o.now().Sub(o.startedAt).Milliseconds()
	}

	if o.durationMs > 0 {
		position = min(position, o.durationMs)
	}

	return max(position, 0)
}

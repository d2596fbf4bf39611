package auth

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/oshokin/ncm-player/internal/logger"
)

// span is a closed range of durations a jittered wait is drawn from.
type span struct {
	min, max time.Duration
}

//nolint:gochecknoglobals // Fixed timing profiles.
var (
	// navigationPause is waited around page navigations.
	navigationPause = span{min: 500 * time.Millisecond, max: 2 * time.Second}
	// cursorPause is waited between two cursor moves.
	cursorPause = span{min: 100 * time.Millisecond, max: 400 * time.Millisecond}
)

// cursorMoves is the number of cursor moves after the login page loads.
const cursorMoves = 3

// draw picks a duration in [s.min, s.max).
func (s span) draw() time.Duration {
	if s.max <= s.min {
		return s.min
	}

	//nolint:gosec // Timing jitter does not need a cryptographic source.
	return s.min + rand.N(s.max-s.min)
}

// sleep waits a drawn duration or until ctx ends.
func (s span) sleep(ctx context.Context) error {
	timer := time.NewTimer(s.draw())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// wanderCursor drifts the cursor over the viewport so the page sees pointer activity.
// Failures are only logged, the login does not depend on it.
func (b *RodBrowser) wanderCursor(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "Cursor movement aborted: %v", r)
		}
	}()

	viewport, err := b.page.Eval(`() => [window.innerWidth, window.innerHeight]`)
	if err != nil {
		logger.Debugf(ctx, "Failed to read viewport: %v", err)

		return
	}

	size := viewport.Value.Arr()
	if len(size) != 2 || size[0].Num() < 1 || size[1].Num() < 1 {
		return
	}

	width, height := size[0].Num(), size[1].Num()

	for range cursorMoves {
		//nolint:gosec // Cursor positions do not need a cryptographic source.
		point := proto.NewPoint(rand.Float64()*width, rand.Float64()*height)
		if err = b.page.Mouse.MoveTo(point); err != nil {
			return
		}

		if err = cursorPause.sleep(ctx); err != nil {
			return
		}
	}
}

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/ncm-player/internal/audio/bus"
	"github.com/oshokin/ncm-player/internal/audio/channel"
	"github.com/oshokin/ncm-player/internal/audio/engine"
	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/catalog"
	"github.com/oshokin/ncm-player/internal/service/player"
	"github.com/oshokin/ncm-player/internal/session"
)

// PlayOptions describes what the play command starts with.
type PlayOptions struct {
	// PlaylistID is the playlist to queue.
	PlaylistID int64
	// Index is the position of the first song.
	Index int
	// Shuffle randomizes the queue.
	Shuffle bool
	// Input carries playback controls, one per line. Nil disables controls.
	Input io.Reader
}

// Playback is the set of engine commands reachable from the keyboard.
type Playback interface {
	NextSong(ctx context.Context) error
	PrevSong(ctx context.Context) error
	PauseAudio(ctx context.Context) error
	ResumeAudio(ctx context.Context) error
	SeekAudio(ctx context.Context, positionMs int64) error
}

// ExecutePlayCommand queues a playlist and follows playback until ctx is done.
func ExecutePlayCommand(ctx context.Context, cfg *config.Config, out io.Writer, opts PlayOptions) {
	err := run(ctx, cfg, func(a *App) error {
		return a.Play(ctx, out, opts)
	})
	if err != nil {
		logger.Fatalf(ctx, "Playback failed: %v", err)
	}
}

// Play starts the audio engine, queues the playlist and prints what is playing
// until ctx is done or the user quits.
func (a *App) Play(ctx context.Context, out io.Writer, opts PlayOptions) error {
	ctx = logger.WithName(ctx, "player")

	link := bus.New()
	defer link.Close()

	// The engine talks to the service through its own gateway, authenticated by setCookie.
	identity := engine.NewIdentity()
	resolver := engine.NewCatalogResolver(catalog.NewService(ncm.NewClient(a.cfg, identity)), a.cfg.AudioLevel)

	audioEngine := engine.New(link, resolver, identity, engine.WithTick(a.cfg.ParsedPositionTick))
	if err := audioEngine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start audio engine: %w", err)
	}

	defer audioEngine.Close()

	engineChannel := channel.New(link, a.cfg.ParsedEngineReplyTimeout)
	defer engineChannel.Close()

	if err := engineChannel.Start(ctx); err != nil {
		return err
	}

	// The first setCookie completes before any song is resolved.
	if err := engineChannel.SetCookie(ctx, a.store.CookieHeader()); err != nil {
		return fmt.Errorf("failed to pass identity to audio engine: %w", err)
	}

	stopForwarding := a.store.Subscribe(func(ctx context.Context, cookies []session.Cookie) {
		go func() {
			if err := engineChannel.SetCookie(context.WithoutCancel(ctx), session.Header(cookies)); err != nil {
				logger.Warnf(ctx, "Failed to forward identity to audio engine: %v", err)
			}
		}()
	})
	defer stopForwarding()

	printer := &nowPlayingPrinter{out: out}
	defer printer.close()

	nowPlaying := player.NewNowPlaying(engineChannel, a.songs, printer.print)
	if err := nowPlaying.Start(ctx); err != nil {
		return err
	}

	defer nowPlaying.Close()

	scope := player.NewScope()
	defer scope.Cancel()

	view, err := player.NewPlaylistLoader(a.catalog, a.songs).Load(ctx, scope, opts.PlaylistID)
	if err != nil {
		return explain(err)
	}

	printer.header(view)

	if err = player.Play(ctx, engineChannel, view.Songs, opts.Index, opts.Shuffle); err != nil {
		return err
	}

	return followControls(ctx, engineChannel, opts.Input, out)
}

// followControls applies control lines from input until ctx is done or the user quits.
func followControls(ctx context.Context, playback Playback, input io.Reader, out io.Writer) error {
	if input == nil {
		<-ctx.Done()

		return nil
	}

	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				<-ctx.Done()

				return nil
			}

			err := applyControl(ctx, playback, line)

			switch {
			case errors.Is(err, errQuit):
				return nil
			case err != nil:
				fmt.Fprintf(out, "%v\n", err)
			}
		}
	}
}

// applyControl runs one control line: n(ext), p(rev), pause, r(esume), s(eek) <seconds>, q(uit).
func applyControl(ctx context.Context, playback Playback, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "n", "next":
		return playback.NextSong(ctx)
	case "p", "prev":
		return playback.PrevSong(ctx)
	case "pause":
		return playback.PauseAudio(ctx)
	case "r", "resume":
		return playback.ResumeAudio(ctx)
	case "s", "seek":
		if len(fields) != 2 {
			return ErrSeekUsage
		}

		seconds, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || seconds < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidPosition, fields[1])
		}

		return playback.SeekAudio(ctx, time.Duration(seconds*float64(time.Second)).Milliseconds())
	case "q", "quit":
		return errQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownControl, fields[0])
	}
}

// positionBarWidth is the width of the playback position bar in characters.
const positionBarWidth = 30

// nowPlayingPrinter prints track and play state changes, plus a position bar per song.
type nowPlayingPrinter struct {
	out io.Writer

	mu        sync.Mutex
	songID    int64
	isPlaying bool
	// bar follows the position of songID; nil when disabled or the duration is unknown.
	bar *progressbar.ProgressBar
	// barOnLine is set while the bar owns the current output line.
	barOnLine bool
}

func (p *nowPlayingPrinter) header(view *player.PlaylistView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	printPlaylistHeader(p.out, view)
}

func (p *nowPlayingPrinter) print(state player.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if state.Song != nil && state.Song.ID != p.songID {
		p.songID = state.Song.ID

		p.endLine()
		fmt.Fprintf(p.out, "Now playing: %s - %s [%s]\n",
			state.Song.Name, artistNames(state.Song), player.FormatDuration(state.DurationMs))

		p.bar = newPositionBar(p.out, state.Song.Name, state.DurationMs)
	}

	if state.IsPlaying != p.isPlaying {
		p.isPlaying = state.IsPlaying

		p.endLine()

		if state.IsPlaying {
			fmt.Fprintln(p.out, "Playing")
		} else {
			fmt.Fprintln(p.out, "Paused")
		}
	}

	if p.bar != nil && state.TrackID == p.songID {
		position := min(max(state.PositionMs, 0), state.DurationMs)

		if err := p.bar.Set64(position); err != nil {
			logger.Debugf(context.Background(), "Failed to update position bar: %v", err)
		}

		p.barOnLine = true
	}
}

// close moves past the bar so later output starts on a fresh line.
func (p *nowPlayingPrinter) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	p.bar = nil
}

// endLine terminates the line the bar is drawn on. Caller holds mu.
func (p *nowPlayingPrinter) endLine() {
	if p.barOnLine {
		fmt.Fprintln(p.out)

		p.barOnLine = false
	}
}

// newPositionBar returns a bar counting milliseconds of durationMs.
// The bar is drawn at info level and below only.
func newPositionBar(out io.Writer, description string, durationMs int64) *progressbar.ProgressBar {
	if durationMs <= 0 || logger.Level() > zapcore.InfoLevel {
		return nil
	}

	return progressbar.NewOptions64(
		durationMs,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(positionBarWidth),
		progressbar.OptionSetPredictTime(false),
	)
}

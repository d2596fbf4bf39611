package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
)

// ExecuteCacheStatsCommand prints a summary of the song cache.
func ExecuteCacheStatsCommand(ctx context.Context, cfg *config.Config, out io.Writer) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintCacheStats(ctx, out, time.Now())
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to read cache stats: %v", err)
	}
}

// ExecuteCachePurgeCommand removes every cached song.
func ExecuteCachePurgeCommand(ctx context.Context, cfg *config.Config, out io.Writer) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PurgeCache(ctx, out)
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to purge cache: %v", err)
	}
}

// PrintCacheStats prints the song cache summary relative to now.
func (a *App) PrintCacheStats(ctx context.Context, out io.Writer, now time.Time) error {
	stats, err := a.songs.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Database: %s", a.db.Path())

	if info, statErr := os.Stat(a.db.Path()); statErr == nil {
		fmt.Fprintf(out, " (%s)", humanize.Bytes(uint64(max(info.Size(), 0))))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cached songs: %s (%s expired)\n", humanize.Comma(stats.Total), humanize.Comma(stats.Expired))

	if stats.Total == 0 {
		return nil
	}

	fmt.Fprintf(out, "Next expiry: %s\n", humanize.RelTime(stats.SoonestExpiry, now, "ago", "from now"))
	fmt.Fprintf(out, "Last expiry: %s\n", humanize.RelTime(stats.LatestExpiry, now, "ago", "from now"))

	return nil
}

// PurgeCache removes every cached song.
func (a *App) PurgeCache(ctx context.Context, out io.Writer) error {
	removed, err := a.songs.Purge(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %s cached songs.\n", humanize.Comma(removed))

	return nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/ncm-player/internal/client/ncm"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/player"
	"github.com/oshokin/ncm-player/internal/utils"
)

// ExecutePlaylistCommand prints a playlist with its songs.
func ExecutePlaylistCommand(ctx context.Context, cfg *config.Config, out io.Writer, id int64) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintPlaylist(ctx, out, id)
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to load playlist: %v", err)
	}
}

// ExecuteSongsCommand prints the details of songs.
func ExecuteSongsCommand(ctx context.Context, cfg *config.Config, out io.Writer, ids []int64) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintSongs(ctx, out, ids)
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to load songs: %v", err)
	}
}

// ExecuteRecommendCommand prints the daily recommended playlists.
func ExecuteRecommendCommand(ctx context.Context, cfg *config.Config, out io.Writer) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintRecommendations(ctx, out)
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to load recommendations: %v", err)
	}
}

// ExecuteSearchCommand prints songs matching keyword.
func ExecuteSearchCommand(ctx context.Context, cfg *config.Config, out io.Writer, keyword string, limit, offset int) {
	err := run(ctx, cfg, func(a *App) error {
		return a.PrintSearch(ctx, out, keyword, limit, offset)
	})
	if err != nil {
		logger.Fatalf(ctx, "Search failed: %v", err)
	}
}

// PrintPlaylist prints playlist id with its songs.
func (a *App) PrintPlaylist(ctx context.Context, out io.Writer, id int64) error {
	view, err := player.NewPlaylistLoader(a.catalog, a.songs).Load(ctx, player.NewScope(), id)
	if err != nil {
		return explain(err)
	}

	printPlaylistHeader(out, view)

	for i, song := range view.Songs {
		printSong(out, i+1, song)
	}

	return nil
}

// PrintSongs prints songs in the order of ids. Unknown ids are reported in place.
func (a *App) PrintSongs(ctx context.Context, out io.Writer, ids []int64) error {
	songs, err := a.songs.GetSongDetails(ctx, ids)
	if err != nil {
		return explain(err)
	}

	for i, song := range songs {
		if song == nil {
			fmt.Fprintf(out, "%3d. song %d not found\n", i+1, ids[i])

			continue
		}

		printSong(out, i+1, song)
	}

	return nil
}

// PrintRecommendations prints the daily recommended playlists.
func (a *App) PrintRecommendations(ctx context.Context, out io.Writer) error {
	playlists, err := a.catalog.RecommendResource(ctx)
	if err != nil {
		return explain(err)
	}

	if len(playlists) == 0 {
		fmt.Fprintln(out, "No recommendations today.")

		return nil
	}

	for _, p := range playlists {
		fmt.Fprintf(out, "%d\t%s (%s tracks, %s plays)\n",
			p.ID, p.Name, humanize.Comma(p.TrackCount), humanize.Comma(p.PlayCount))

		if p.Copywriter != "" {
			fmt.Fprintf(out, "\t%s\n", p.Copywriter)
		}
	}

	return nil
}

// PrintSearch prints songs matching keyword.
func (a *App) PrintSearch(ctx context.Context, out io.Writer, keyword string, limit, offset int) error {
	result, err := a.catalog.Search(ctx, keyword, limit, offset)
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(out, "%s songs found\n", humanize.Comma(result.SongCount))

	for i, song := range result.Songs {
		printSong(out, offset+i+1, song)
	}

	return nil
}

func printPlaylistHeader(out io.Writer, view *player.PlaylistView) {
	fmt.Fprintf(out, "%s by %s\n", view.Playlist.Name, view.Playlist.Creator.Nickname)
	fmt.Fprintf(out, "%d songs, %s\n", len(view.Songs), player.FormatDurationLong(view.TotalDurationMs))
}

func printSong(out io.Writer, position int, song *ncm.SongDetail) {
	fmt.Fprintf(out, "%3d. %s - %s [%s] (%d)\n",
		position, song.Name, artistNames(song), player.FormatDuration(song.Duration), song.ID)
}

func artistNames(song *ncm.SongDetail) string {
	return strings.Join(utils.Map(song.Artists, func(artist ncm.Artist) string {
		return artist.Name
	}), " / ")
}

package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/ncm-player/internal/app"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/service/catalog"
)

// ErrInvalidID indicates an argument that is neither an id nor a link carrying one.
var ErrInvalidID = errors.New("invalid id")

var (
	//nolint:gochecknoglobals // Cobra commands are defined globally.
	playlistCmd = &cobra.Command{
		Use:   "playlist {id|url}",
		Short: "List the songs of a playlist",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse playlist: %v", err)
			}

			app.ExecutePlaylistCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), id)
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	songsCmd = &cobra.Command{
		Use:   "songs {id|url}...",
		Short: "Show song details, served from the local cache when possible",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ids, err := parseIDs(args)
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse songs: %v", err)
			}

			app.ExecuteSongsCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), ids)
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	recommendCmd = &cobra.Command{
		Use:   "recommend",
		Short: "List today's recommended playlists (requires login)",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteRecommendCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	searchCmd = &cobra.Command{
		Use:   "search {keyword}",
		Short: "Search for songs",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			app.ExecuteSearchCommand(cmd.Context(), appConfig, cmd.OutOrStdout(),
				strings.Join(args, " "), limit, offset)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	searchCmd.Flags().IntP("limit", "n", catalog.DefaultSearchLimit, "number of results.")
	searchCmd.Flags().Int("offset", 0, "number of results to skip.")

	rootCmd.AddCommand(playlistCmd, songsCmd, recommendCmd, searchCmd)
}

// parseID accepts a numeric id or a link with an id query parameter,
// e.g. https://music.163.com/#/playlist?id=123.
func parseID(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)

	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return id, nil
	}

	link, err := url.Parse(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}

	query := link.RawQuery
	// Links of the web player keep the route in the fragment.
	if _, fragmentQuery, found := strings.Cut(link.Fragment, "?"); found {
		query = fragmentQuery
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}

	id, err := strconv.ParseInt(values.Get("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}

	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))

	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/ncm-player/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra commands are defined globally.
	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Song detail cache management commands",
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	cacheStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show the size and expiry of the song detail cache",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteCacheStatsCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	cachePurgeCmd = &cobra.Command{
		Use:   "purge",
		Short: "Remove every cached song detail",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteCachePurgeCommand(cmd.Context(), appConfig, cmd.OutOrStdout())
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cachePurgeCmd)

	rootCmd.AddCommand(cacheCmd)
}

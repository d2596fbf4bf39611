package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/ncm-player/internal/app"
	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
)

//nolint:gochecknoglobals // Cobra commands are defined globally.
var playCmd = &cobra.Command{
	Use:   "play {playlist id|url}",
	Short: "Play a playlist",
	Long: `Queues a playlist in the audio engine and prints what is playing until Ctrl+C.

Controls, one per line:
  n        next song
  p        previous song
  pause    pause
  r        resume
  s 90     seek to 90 seconds
  q        quit`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			logger.Fatalf(cmd.Context(), "Failed to parse playlist: %v", err)
		}

		index, _ := cmd.Flags().GetInt("index")
		shuffle, _ := cmd.Flags().GetBool("shuffle")

		app.ExecutePlayCommand(cmd.Context(), appConfig, cmd.OutOrStdout(), app.PlayOptions{
			PlaylistID: id,
			Index:      index,
			Shuffle:    shuffle,
			Input:      cmd.InOrStdin(),
		})
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	playCmdFlags := playCmd.Flags()

	playCmdFlags.IntP("index", "i", 0, "position of the first song (zero-based).")
	playCmdFlags.BoolP("shuffle", "s", false, "shuffle the queue.")
	playCmdFlags.StringP(
		"audio-level",
		"l",
		"",
		"stream quality: "+strings.Join(config.AudioLevels, ", ")+".")

	rootCmd.AddCommand(playCmd)
}

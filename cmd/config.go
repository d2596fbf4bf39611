package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/ncm-player/internal/app"
	"github.com/oshokin/ncm-player/internal/config"
)

var (
	//nolint:gochecknoglobals // Cobra commands are defined globally.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	//nolint:gochecknoglobals // Cobra commands are defined globally.
	configSetCmd = &cobra.Command{
		Use:   "set {key} {value}",
		Short: "Set a configuration value",
		Long: `Writes one key of the configuration file, keeping the other keys and their order.
The file is left unchanged when the new value does not validate.

Keys: ` + strings.Join(config.Keys, ", "),
		Args: cobra.ExactArgs(2),
		// The file may be broken; loading it first would make it impossible to fix.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteConfigSetCommand(cmd.Context(), configFilenameFromFlag, cmd.OutOrStdout(), args[0], args[1])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(configCmd)
}

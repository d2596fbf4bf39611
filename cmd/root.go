package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "ncm-player",
		Short: "Browse and play NetEase Cloud Music from the terminal.",
		Long: `NCM Player is a terminal client for NetEase Cloud Music.
It supports:
- Logging in with a pasted cookie export or through a browser
- Browsing playlists, daily recommendations and search results
- Playing a playlist through the built-in audio engine
- Caching song details locally for 30 days

Requests use the encrypted desktop protocol, so the session behaves like the desktop client.`,
		Version:           version.Short(),
		PersistentPreRun:  initConfig,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmdFlags := rootCmd.PersistentFlags()

	rootCmdFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags.String(
		"log-level",
		"",
		"log level: debug, info, warn, error.")

	rootCmdFlags.String(
		"database",
		"",
		"path to the cache database (the folder will be created if it doesn’t exist).")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("database"); flag != nil && flag.Changed {
		cfg.DatabasePath, _ = flags.GetString("database")
	}

	if flag := flags.Lookup("audio-level"); flag != nil && flag.Changed {
		cfg.AudioLevel, _ = flags.GetString("audio-level")
	}

	return config.ValidateConfig(cfg)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/ncm-player/internal/config"
	"github.com/oshokin/ncm-player/internal/constants"
	"github.com/oshokin/ncm-player/internal/logger"
)

// ExecuteConfigSetCommand writes one key of the configuration file.
func ExecuteConfigSetCommand(ctx context.Context, configPath string, out io.Writer, key, value string) {
	if err := SetConfigValue(configPath, key, value); err != nil {
		logger.Fatalf(ctx, "Failed to update configuration: %v", err)
	}

	fmt.Fprintf(out, "%s = %s\n", key, value)
}

// SetConfigValue writes key to the configuration file. The file is restored when
// the result does not validate.
func SetConfigValue(configPath, key, value string) error {
	if configPath == "" {
		configPath = config.DefaultConfigFilename
	}

	original, err := os.ReadFile(configPath)
	existed := err == nil

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err = config.SetValue(configPath, key, value); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err == nil {
		err = config.ValidateConfig(cfg)
	}

	if err == nil {
		return nil
	}

	var restoreErr error
	if existed {
		restoreErr = os.WriteFile(configPath, original, constants.DefaultFilePermissions)
	} else {
		restoreErr = os.Remove(configPath)
	}

	return errors.Join(fmt.Errorf("invalid value for %s: %w", key, err), restoreErr)
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/config"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// stringSetting returns the flag value when it was set on the command line,
// and the configured value otherwise.
func stringSetting(cmd *cobra.Command, flag, configured string) (string, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) || configured == "" {
		return value, nil
	}
	return configured, nil
}

func applyColor(cmd *cobra.Command, cfg config.Config) error {
	mode, err := readMode(cmd, "color", cfg.UI.Color)
	if err != nil {
		return err
	}
	color.NoColor = !modeEnabled(mode, cmd.OutOrStdout()) ||
		(mode == config.ModeAuto && os.Getenv("NO_COLOR") != "")
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bigcalc/internal/config"
)

// readMode resolves an auto|on|off setting from flag or, when the flag is
// unset, from the configured value.
func readMode(cmd *cobra.Command, flag, configured string) (config.Mode, error) {
	value, err := stringSetting(cmd, flag, configured)
	if err != nil {
		return "", err
	}
	mode, err := config.ParseMode(value)
	if err != nil {
		return "", fmt.Errorf("invalid --%s value: %w", flag, err)
	}
	return mode, nil
}

// modeEnabled reports whether a feature in mode should render on w.
// ModeAuto enables it only when w is a terminal.
func modeEnabled(mode config.Mode, w io.Writer) bool {
	switch mode {
	case config.ModeOn:
		return true
	case config.ModeOff:
		return false
	default:
		return writerIsTerminal(w)
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

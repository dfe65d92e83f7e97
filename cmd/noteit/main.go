// Package main implements the noteit CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "noteit",
	Short:        "NoteIt - personal notes with todo checklists",
	SilenceUsage: true,
}

var (
	rootAPIURL     string
	rootConfigPath string
	rootLogLevel   string
	rootStateDir   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAPIURL, "api-url", "", "Notes API base URL (overrides config and $NOTEIT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Config file layered over ~/.config/noteit/config.toml")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootStateDir, "state-dir", "", "Directory holding the device identifier (overrides $NOTEIT_STATE_DIR)")
}

package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/amonks/noteit/internal/notetui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit notes interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Log records would tear the alternate screen.
	a, err := openApp(appOptions{logOutput: io.Discard})
	if err != nil {
		return err
	}
	return notetui.Run(cmd.Context(), a.store)
}

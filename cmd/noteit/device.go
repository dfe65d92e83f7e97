package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Print the identifier that scopes notes to this machine",
	Args:  cobra.NoArgs,
	RunE:  runDevice,
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}

func runDevice(cmd *cobra.Command, args []string) error {
	provider, err := openDeviceProvider()
	if err != nil {
		return err
	}

	id, err := provider.Lookup()
	if err != nil {
		return fmt.Errorf("load device id: %w", err)
	}
	fmt.Println(id)
	return nil
}

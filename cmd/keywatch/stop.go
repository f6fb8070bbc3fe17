package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/veska/keywatch/internal/pid"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a background monitor",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := pid.SignalRunning(); err != nil {
			return err
		}

		fmt.Println("Keyboard monitoring stopped.")

		return nil
	},
}

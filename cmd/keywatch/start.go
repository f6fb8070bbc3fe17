package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/veska/keywatch/internal/logger"
	"codeberg.org/veska/keywatch/internal/pid"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start monitoring in the background",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := pid.Write(); err != nil {
			return err
		}
		defer func() {
			if err := pid.Remove(); err != nil {
				logger.Warn().Err(err).Msg("Failed to remove PID file")
			}
		}()

		ctrl, cfg, err := buildController(cmd)
		if err != nil {
			return err
		}
		defer ctrl.Shutdown()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go handleSignals(cancel)

		if err := ctrl.Start(ctx); err != nil {
			return err
		}

		fmt.Println("Keyboard monitoring is now active in the background.")
		fmt.Printf("Journal directory: %s\n", cfg.JournalDir)
		fmt.Println("To stop, run: keywatch stop")
		fmt.Println("To view live stats, run: keywatch")

		<-ctx.Done()

		return nil
	},
}

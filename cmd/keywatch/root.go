package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/veska/keywatch/internal/capture"
	"codeberg.org/veska/keywatch/internal/config"
	"codeberg.org/veska/keywatch/internal/journal"
	"codeberg.org/veska/keywatch/internal/logger"
	"codeberg.org/veska/keywatch/internal/monitor"
	"codeberg.org/veska/keywatch/internal/telemetry"
	"codeberg.org/veska/keywatch/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "keywatch",
	Short: "keywatch tracks keyboard activity without recording what you type",
	Long: `keywatch counts keystrokes into per-hour buckets and keeps a daily
journal of activity. Key content is never recorded; only the fact that a
key was pressed, and when.

Without a subcommand it opens the interactive dashboard. Use 'start' and
'stop' for headless background monitoring, and 'report' for a plain-text
activity summary.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("journal-dir", "", "directory for daily journals and reports")
	flags.Int("batch-size", config.DefaultBatchSize, "events between periodic checkpoints")
	flags.Int("heartbeat", config.DefaultHeartbeat, "seconds between dashboard refresh signals")
	flags.Int("milestone", 0, "desktop notification every N keystrokes (0 disables)")
	flags.Bool("telemetry", false, "record periodic snapshots to SQLite")
	flags.String("database", "", "telemetry database path")
	flags.Bool("debug", false, "enable debugging output")
	flags.Bool("verbose", false, "enable verbose logging")

	rootCmd.AddCommand(startCmd, stopCmd, reportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildController loads configuration and assembles the monitor behind
// every command mode.
func buildController(cmd *cobra.Command) (*monitor.Controller, *config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Str("journal_dir", cfg.JournalDir).Msg("Config loaded")

	store, err := journal.NewStore(cfg.JournalDir, nil)
	if err != nil {
		return nil, nil, err
	}

	collector, err := telemetry.NewService(telemetry.Config{
		DBPath:  cfg.TelemetryDB,
		Enabled: cfg.Telemetry,
	})
	if err != nil {
		return nil, nil, err
	}

	ctrl := monitor.New(store, capture.New(),
		monitor.WithBatchSize(cfg.BatchSize),
		monitor.WithHeartbeat(time.Duration(cfg.Heartbeat)*time.Second),
		monitor.WithMilestone(cfg.Milestone),
		monitor.WithCollector(collector),
	)

	return ctrl, cfg, nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	ctrl, _, err := buildController(cmd)
	if err != nil {
		return err
	}
	defer ctrl.Shutdown()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(cancel)

	return tui.Run(ctx, ctrl)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

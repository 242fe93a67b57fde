// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/votersspeak/congress-sync/internal/history"
	"github.com/votersspeak/congress-sync/internal/pipeline"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the update pipeline on a schedule",
	Long: `Daemon runs an update immediately and then repeats on the configured
interval until interrupted. Failed runs are logged and the schedule
continues; the daemon only exits on SIGINT/SIGTERM.`,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().Duration("interval", 0, "time between runs (default from config, 24h)")

	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval == 0 {
		interval = viper.GetDuration("schedule.interval")
	}
	if interval <= 0 {
		return fmt.Errorf("invalid schedule interval %v", interval)
	}

	runs, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer runs.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o := pipeline.New(cfg, runs, os.Stdout)
	runOnce := func() {
		result, err := o.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "run %s finished %s: %v\n", result.RunID, result.State, err)
			return
		}
		fmt.Printf("run %s finished %s, next run in %v\n", result.RunID, result.State, interval)
	}

	fmt.Printf("daemon started, interval %v\n", interval)
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("daemon stopping")
			return nil
		case <-ticker.C:
			runOnce()
		}
	}
}

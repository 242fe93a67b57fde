// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/votersspeak/congress-sync/internal/dashboard"
	"github.com/votersspeak/congress-sync/internal/history"
	"github.com/votersspeak/congress-sync/internal/pipeline"
	"github.com/votersspeak/congress-sync/internal/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Serve starts the dashboard: run history, report browsing and download,
manual update triggers, and schedule/notification settings.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Dashboard.Addr
	}

	runs, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer runs.Close()

	// Manual triggers run in the background, one at a time. The dashboard
	// reloads config on each trigger so settings edits take effect without
	// a restart.
	var running sync.Mutex
	triggerRun := func(ctx context.Context) error {
		if !running.TryLock() {
			return dashboard.ErrRunInProgress
		}
		go func() {
			defer running.Unlock()
			o := pipeline.New(loadPipelineConfig(), runs, os.Stdout)
			if _, err := o.Run(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "triggered run failed: %v\n", err)
			}
		}()
		return nil
	}

	app := dashboard.New(dashboard.Deps{
		Runs:       runs,
		Reports:    report.NewBuilder(cfg.Report),
		TriggerRun: triggerRun,
		GetSettings: func() dashboard.Settings {
			return dashboard.Settings{
				ScheduleInterval: viper.GetDuration("schedule.interval"),
				Recipients:       viper.GetStringSlice("notify.recipients"),
			}
		},
		SaveSettings: saveSettings,
	})

	fmt.Printf("dashboard listening on %s\n", addr)
	return app.Listen(addr)
}

// saveSettings persists dashboard edits back to the config file.
func saveSettings(s dashboard.Settings) error {
	viper.Set("schedule.interval", s.ScheduleInterval.String())
	viper.Set("notify.recipients", s.Recipients)

	if viper.ConfigFileUsed() == "" {
		return viper.WriteConfigAs("congress-sync.yaml")
	}
	return viper.WriteConfig()
}

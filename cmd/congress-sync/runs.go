// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/votersspeak/congress-sync/internal/history"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, r := range runs {
			line := fmt.Sprintf("%s  %-9s house=%d senate=%d new=%d updated=%d removed=%d",
				r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.State,
				r.HouseCount, r.SenateCount, r.NewCount, r.UpdatedCount, r.RemovedCount)
			if r.Error != "" {
				line += "  error: " + r.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(runsCmd)
}

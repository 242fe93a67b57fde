// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/votersspeak/congress-sync/internal/history"
	"github.com/votersspeak/congress-sync/internal/pipeline"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the update pipeline once",
	Long: `Update downloads the upstream legislator mirrors, transforms them into the
member schema, verifies the result against the previous snapshot, and on
success backs up and replaces the canonical dataset file. A change report is
written for every run, successful or not.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	var runs *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		var err error
		runs, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer runs.Close()
	}

	o := pipeline.New(cfg, runs, os.Stdout)
	result, err := o.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("update run %s: %w", result.State, err)
	}

	added, updated, removed := result.Diff.Counts()
	fmt.Printf("update complete: %d House, %d Senate (%d new, %d updated, %d removed, %d warning(s))\n",
		len(result.Dataset.House), len(result.Dataset.Senate),
		added, updated, removed, len(result.Validation.Warnings))
	return nil
}

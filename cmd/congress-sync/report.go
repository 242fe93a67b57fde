// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/votersspeak/congress-sync/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Browse change reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		builder := report.NewBuilder(cfg.Report)
		metas, err := builder.List()
		if err != nil {
			return err
		}
		if len(metas) == 0 {
			fmt.Println("no reports found")
			return nil
		}
		for _, m := range metas {
			fmt.Printf("%s  new=%d updated=%d removed=%d errors=%d warnings=%d\n",
				m.ID, m.New, m.Updated, m.Removed, m.Errors, m.Warnings)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Print a report to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		builder := report.NewBuilder(cfg.Report)
		path, err := builder.PathFor(args[0])
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Print(string(content))
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)

	rootCmd.AddCommand(reportCmd)
}

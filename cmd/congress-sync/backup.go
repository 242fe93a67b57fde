// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/votersspeak/congress-sync/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage dataset backups",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups of the dataset file, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		rotator := backup.NewRotator(cfg.Backup)
		entries, err := rotator.List(cfg.DataFile)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no backups found")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Path)
		}
		return nil
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up the dataset file now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		rotator := backup.NewRotator(cfg.Backup)
		path, err := rotator.Create(cfg.DataFile)
		if err != nil {
			return err
		}
		fmt.Printf("created backup %s\n", path)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-path]",
	Short: "Restore the dataset file from a backup",
	Long: `Restore overwrites the dataset file with a backup, defaulting to the most
recent one. The current file is snapshotted first so the restore can itself
be undone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadPipelineConfig()
		rotator := backup.NewRotator(cfg.Backup)

		backupPath := ""
		if len(args) == 1 {
			backupPath = args[0]
		}
		used, err := rotator.Restore(cfg.DataFile, backupPath)
		if err != nil {
			return err
		}
		fmt.Printf("restored %s from %s\n", cfg.DataFile, used)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	rootCmd.AddCommand(backupCmd)
}

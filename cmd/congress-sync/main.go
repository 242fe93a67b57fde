// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the congress-sync CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/votersspeak/congress-sync/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the congress-sync CLI.
var rootCmd = &cobra.Command{
	Use:   "congress-sync",
	Short: "Keep a congressional roster dataset in sync with upstream mirrors",
	Long: `congress-sync downloads the public legislator mirrors, transforms them into
the application's member schema, verifies the result against the previous
snapshot, and persists it with backups, change reports, and optional email
notifications.

Each operation is a subcommand: update runs the pipeline once, daemon runs it
on a schedule, and backup, report, runs, and serve manage the surrounding
state.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./congress-sync.yaml or ~/.config/congress-sync/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("congress-sync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "congress-sync"))
		}
	}

	viper.SetEnvPrefix("CONGRESS_SYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

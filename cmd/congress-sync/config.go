// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/votersspeak/congress-sync/internal/secrets"
	"github.com/votersspeak/congress-sync/pkg/types"
)

func init() {
	viper.SetDefault("data_file", "data/congress_data.json")

	viper.SetDefault("fetch.timeout", 60*time.Second)
	viper.SetDefault("fetch.user_agent", "congress-sync/"+version)
	viper.SetDefault("fetch.max_retries", 3)
	viper.SetDefault("fetch.retry_wait_time", 2*time.Second)
	viper.SetDefault("fetch.retry_max_wait_time", 30*time.Second)
	viper.SetDefault("fetch.data_dir", "data")
	viper.SetDefault("fetch.current_url", types.DefaultCurrentURL)
	viper.SetDefault("fetch.historical_url", types.DefaultHistoricalURL)
	viper.SetDefault("fetch.social_media_url", types.DefaultSocialMediaURL)

	defaults := types.DefaultVerifyConfig()
	viper.SetDefault("verify.house_error_delta", defaults.HouseErrorDelta)
	viper.SetDefault("verify.house_warn_delta", defaults.HouseWarnDelta)
	viper.SetDefault("verify.senate_error_delta", defaults.SenateErrorDelta)
	viper.SetDefault("verify.senate_warn_delta", defaults.SenateWarnDelta)
	viper.SetDefault("verify.house_churn_warn", defaults.HouseChurnWarn)
	viper.SetDefault("verify.senate_churn_warn", defaults.SenateChurnWarn)

	viper.SetDefault("backup.dir", "data/backups")
	viper.SetDefault("backup.max_backups", 10)
	viper.SetDefault("backup.retention_days", 30)

	viper.SetDefault("report.dir", "data/reports")
	viper.SetDefault("report.html", true)

	viper.SetDefault("notify.port", 587)
	viper.SetDefault("notify.from", "congress-sync <noreply@localhost>")

	viper.SetDefault("history.db_path", "data/history.db")
	viper.SetDefault("dashboard.addr", ":8080")
	viper.SetDefault("schedule.interval", 24*time.Hour)
}

// loadPipelineConfig assembles the pipeline configuration from viper, with
// SMTP credentials falling back to the .secrets/ directory.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		DataFile: viper.GetString("data_file"),
		Fetch: types.FetchConfig{
			Timeout:          viper.GetDuration("fetch.timeout"),
			UserAgent:        viper.GetString("fetch.user_agent"),
			MaxRetries:       viper.GetInt("fetch.max_retries"),
			RetryWaitTime:    viper.GetDuration("fetch.retry_wait_time"),
			RetryMaxWaitTime: viper.GetDuration("fetch.retry_max_wait_time"),
			DataDir:          viper.GetString("fetch.data_dir"),
			CurrentURL:       viper.GetString("fetch.current_url"),
			HistoricalURL:    viper.GetString("fetch.historical_url"),
			SocialMediaURL:   viper.GetString("fetch.social_media_url"),
		},
		Verify: types.VerifyConfig{
			HouseErrorDelta:  viper.GetInt("verify.house_error_delta"),
			HouseWarnDelta:   viper.GetInt("verify.house_warn_delta"),
			SenateErrorDelta: viper.GetInt("verify.senate_error_delta"),
			SenateWarnDelta:  viper.GetInt("verify.senate_warn_delta"),
			HouseChurnWarn:   viper.GetInt("verify.house_churn_warn"),
			SenateChurnWarn:  viper.GetInt("verify.senate_churn_warn"),
		},
		Backup: types.BackupConfig{
			Dir:           viper.GetString("backup.dir"),
			MaxBackups:    viper.GetInt("backup.max_backups"),
			RetentionDays: viper.GetInt("backup.retention_days"),
		},
		Report: types.ReportConfig{
			Dir:  viper.GetString("report.dir"),
			HTML: viper.GetBool("report.html"),
		},
		Notify: types.NotifyConfig{
			Server:     viper.GetString("notify.server"),
			Port:       viper.GetInt("notify.port"),
			From:       viper.GetString("notify.from"),
			Username:   viper.GetString("notify.username"),
			Password:   viper.GetString("notify.password"),
			Recipients: viper.GetStringSlice("notify.recipients"),
		},
		History: types.HistoryConfig{
			DBPath: viper.GetString("history.db_path"),
		},
		Dashboard: types.DashboardConfig{
			Addr: viper.GetString("dashboard.addr"),
		},
	}

	if cfg.Notify.Username == "" {
		cfg.Notify.Username = loadedSecrets[secrets.SMTPUsername]
	}
	if cfg.Notify.Password == "" {
		cfg.Notify.Password = loadedSecrets[secrets.SMTPPassword]
	}
	return cfg
}

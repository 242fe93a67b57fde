// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Upstream mirror defaults (the United States Project).
const (
	DefaultCurrentURL     = "https://unitedstates.github.io/congress-legislators/legislators-current.json"
	DefaultHistoricalURL  = "https://unitedstates.github.io/congress-legislators/legislators-historical.json"
	DefaultSocialMediaURL = "https://unitedstates.github.io/congress-legislators/legislators-social-media.json"
)

// FetchConfig holds settings for downloading the upstream mirrors.
type FetchConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "congress-sync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retry attempts on transient server errors (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryWaitTime is the base backoff delay; it doubles per attempt up to
	// RetryMaxWaitTime. A server-provided Retry-After takes precedence.
	RetryWaitTime    time.Duration `json:"retry_wait_time" yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `json:"retry_max_wait_time" yaml:"retry_max_wait_time"`

	// DataDir is where downloaded mirror files land.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	CurrentURL     string `json:"current_url" yaml:"current_url"`
	HistoricalURL  string `json:"historical_url" yaml:"historical_url"`
	SocialMediaURL string `json:"social_media_url" yaml:"social_media_url"`
}

// VerifyConfig holds the magnitude-of-change thresholds applied before an
// update may overwrite the persisted dataset. The defaults are the values
// the system has always shipped with; change them only with evidence.
type VerifyConfig struct {
	// HouseErrorDelta rejects the update when the House count changes by
	// more than this many seats; HouseWarnDelta only warns.
	HouseErrorDelta int `json:"house_error_delta" yaml:"house_error_delta"`
	HouseWarnDelta  int `json:"house_warn_delta" yaml:"house_warn_delta"`

	SenateErrorDelta int `json:"senate_error_delta" yaml:"senate_error_delta"`
	SenateWarnDelta  int `json:"senate_warn_delta" yaml:"senate_warn_delta"`

	// Churn thresholds warn on implausibly many additions or removals.
	HouseChurnWarn  int `json:"house_churn_warn" yaml:"house_churn_warn"`
	SenateChurnWarn int `json:"senate_churn_warn" yaml:"senate_churn_warn"`
}

// DefaultVerifyConfig returns the stock thresholds.
func DefaultVerifyConfig() VerifyConfig {
	return VerifyConfig{
		HouseErrorDelta:  50,
		HouseWarnDelta:   20,
		SenateErrorDelta: 20,
		SenateWarnDelta:  10,
		HouseChurnWarn:   50,
		SenateChurnWarn:  20,
	}
}

// BackupConfig holds retention settings for dataset backups. Both policies
// apply independently after every backup creation.
type BackupConfig struct {
	// Dir is the backup directory.
	Dir string `json:"dir" yaml:"dir"`

	// MaxBackups keeps at most this many backups per file (default 10).
	MaxBackups int `json:"max_backups" yaml:"max_backups"`

	// RetentionDays deletes backups older than this many days (default 30).
	RetentionDays int `json:"retention_days" yaml:"retention_days"`
}

// ReportConfig holds settings for change reports.
type ReportConfig struct {
	// Dir is the append-only report directory.
	Dir string `json:"dir" yaml:"dir"`

	// HTML enables the secondary HTML rendering of each report.
	HTML bool `json:"html" yaml:"html"`
}

// NotifyConfig holds SMTP delivery settings. Delivery is best-effort:
// failures are logged and never fail a run.
type NotifyConfig struct {
	Server string `json:"server" yaml:"server"`
	Port   int    `json:"port" yaml:"port"`

	// From is the sender address (e.g. "Voters Speak <noreply@example.com>").
	From string `json:"from" yaml:"from"`

	// Username and Password are optional; when empty the send is
	// unauthenticated. Both may also come from the .secrets/ directory.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	Recipients []string `json:"recipients" yaml:"recipients"`
}

// Enabled reports whether notifications should be attempted at all.
func (c NotifyConfig) Enabled() bool {
	return c.Server != "" && len(c.Recipients) > 0
}

// HistoryConfig holds settings for the run-history database.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default "data/history.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// DashboardConfig holds settings for the web dashboard.
type DashboardConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups everything one update run needs. It is loaded once
// at process start and treated as immutable for the duration of a run.
type PipelineConfig struct {
	// DataFile is the canonical dataset snapshot location.
	DataFile string `json:"data_file" yaml:"data_file"`

	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Verify    VerifyConfig    `json:"verify" yaml:"verify"`
	Backup    BackupConfig    `json:"backup" yaml:"backup"`
	Report    ReportConfig    `json:"report" yaml:"report"`
	Notify    NotifyConfig    `json:"notify" yaml:"notify"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads the upstream legislator mirrors. Transient server
// errors retry with exponential backoff; a Retry-After header from the
// server takes precedence over the computed delay.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// Local file names for the downloaded mirrors.
const (
	CurrentFile     = "legislators-current.json"
	HistoricalFile  = "legislators-historical.json"
	SocialMediaFile = "legislators-social-media.json"
)

// Files holds the local paths of one completed fetch.
type Files struct {
	Current     string
	Historical  string
	SocialMedia string
}

// Fetcher downloads the three upstream resources into a data directory.
type Fetcher struct {
	client *resty.Client
	cfg    types.FetchConfig
	out    io.Writer
}

// NewFetcher builds a fetcher from config. Progress lines go to out.
func NewFetcher(cfg types.FetchConfig, out io.Writer) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryWaitTime == 0 {
		cfg.RetryWaitTime = 2 * time.Second
	}
	if cfg.RetryMaxWaitTime == 0 {
		cfg.RetryMaxWaitTime = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "congress-sync/1.0"
	}
	if cfg.CurrentURL == "" {
		cfg.CurrentURL = types.DefaultCurrentURL
	}
	if cfg.HistoricalURL == "" {
		cfg.HistoricalURL = types.DefaultHistoricalURL
	}
	if cfg.SocialMediaURL == "" {
		cfg.SocialMediaURL = types.DefaultSocialMediaURL
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetRetryMaxWaitTime(cfg.RetryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		}).
		SetRetryAfter(func(c *resty.Client, r *resty.Response) (time.Duration, error) {
			// A zero duration falls back to the computed backoff.
			secs, err := strconv.Atoi(r.Header().Get("Retry-After"))
			if err != nil || secs <= 0 {
				return 0, nil
			}
			return time.Duration(secs) * time.Second, nil
		})

	return &Fetcher{client: client, cfg: cfg, out: out}
}

// FetchAll downloads all three mirrors. Any single failure aborts with an
// error and no partially written files are left behind.
func (f *Fetcher) FetchAll(ctx context.Context) (Files, error) {
	files := Files{
		Current:     filepath.Join(f.cfg.DataDir, CurrentFile),
		Historical:  filepath.Join(f.cfg.DataDir, HistoricalFile),
		SocialMedia: filepath.Join(f.cfg.DataDir, SocialMediaFile),
	}

	downloads := []struct {
		name string
		url  string
		dst  string
	}{
		{"current legislators", f.cfg.CurrentURL, files.Current},
		{"historical legislators", f.cfg.HistoricalURL, files.Historical},
		{"social media", f.cfg.SocialMediaURL, files.SocialMedia},
	}

	if err := os.MkdirAll(f.cfg.DataDir, 0o755); err != nil {
		return Files{}, fmt.Errorf("creating data directory: %w", err)
	}

	for _, d := range downloads {
		fmt.Fprintf(f.out, "fetching %s from %s\n", d.name, d.url)
		if err := f.download(ctx, d.url, d.dst); err != nil {
			return Files{}, fmt.Errorf("fetching %s: %w", d.name, err)
		}
	}
	return files, nil
}

// download writes the response body to a temp file and renames it into
// place, so a failed transfer never clobbers a previous download.
func (f *Fetcher) download(ctx context.Context, url, dst string) error {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %s", resp.Status())
	}

	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, resp.Body(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", dst, err)
	}

	fmt.Fprintf(f.out, "  wrote %s (%d bytes)\n", dst, len(resp.Body()))
	return nil
}

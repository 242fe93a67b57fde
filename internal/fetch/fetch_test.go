// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votersspeak/congress-sync/pkg/types"
)

func testConfig(t *testing.T, base string) types.FetchConfig {
	t.Helper()
	return types.FetchConfig{
		DataDir:          t.TempDir(),
		Timeout:          5 * time.Second,
		MaxRetries:       2,
		RetryWaitTime:    10 * time.Millisecond,
		RetryMaxWaitTime: 50 * time.Millisecond,
		CurrentURL:       base + "/current.json",
		HistoricalURL:    base + "/historical.json",
		SocialMediaURL:   base + "/social.json",
	}
}

func TestFetchAll_DownloadsThreeFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"path":"` + r.URL.Path + `"}]`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	f := NewFetcher(testConfig(t, srv.URL), &out)
	files, err := f.FetchAll(context.Background())
	require.NoError(t, err)

	for _, path := range []string{files.Current, files.Historical, files.SocialMedia} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	assert.Equal(t, filepath.Base(files.Current), CurrentFile)
	assert.Contains(t, out.String(), "fetching current legislators")
}

func TestFetchAll_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := NewFetcher(testConfig(t, srv.URL), &bytes.Buffer{})
	_, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(4), "first request retried")
}

func TestFetchAll_RateLimitedWithRetryAfter(t *testing.T) {
	var calls atomic.Int32
	start := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.RetryMaxWaitTime = 2 * time.Second
	f := NewFetcher(cfg, &bytes.Buffer{})
	_, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(4), "429 retried")
	assert.GreaterOrEqual(t, time.Since(start), time.Second, "Retry-After delay honored over the 10ms backoff")
}

func TestFetchAll_ClientErrorAborts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(testConfig(t, srv.URL), &bytes.Buffer{})
	_, err := f.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current legislators")
	assert.Equal(t, int32(1), calls.Load(), "404 is terminal, not retried")
}

func TestFetchAll_ServerDownAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(testConfig(t, srv.URL), &bytes.Buffer{})
	_, err := f.FetchAll(context.Background())
	assert.ErrorContains(t, err, "unexpected status")
}

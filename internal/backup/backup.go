// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backup keeps timestamped copies of the canonical dataset file and
// prunes them under a two-part retention policy.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// stampLayout is sortable lexically, so backup file names order by age.
const stampLayout = "20060102_150405"

// Entry is one backup on disk.
type Entry struct {
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Rotator creates and prunes backups for files it is handed. The clock is a
// field so tests can pin timestamps.
type Rotator struct {
	cfg types.BackupConfig
	now func() time.Time
}

// NewRotator returns a Rotator using the given retention settings.
func NewRotator(cfg types.BackupConfig) *Rotator {
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 10
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	return &Rotator{cfg: cfg, now: time.Now}
}

// Create copies path into the backup directory under a timestamped name and
// then applies both retention policies. Both run unconditionally; a backup
// past both thresholds can be created and immediately pruned.
func (r *Rotator) Create(path string) (string, error) {
	if err := os.MkdirAll(r.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stamp := r.now().Format(stampLayout)
	dst := filepath.Join(r.cfg.Dir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))

	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("creating backup of %s: %w", path, err)
	}

	if err := r.prune(path); err != nil {
		return "", err
	}
	return dst, nil
}

// List returns the backups for path, newest first.
func (r *Rotator) List(path string) ([]Entry, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dirEntries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		stamp, ok := parseStamp(de.Name(), stem, ext)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Path:      filepath.Join(r.cfg.Dir, de.Name()),
			CreatedAt: stamp,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Restore overwrites path with a backup, defaulting to the most recent. If
// path currently exists it is snapshotted first, so a restore can itself be
// undone.
func (r *Rotator) Restore(path, backupPath string) (string, error) {
	if backupPath == "" {
		entries, err := r.List(path)
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			return "", fmt.Errorf("no backups found for %s", path)
		}
		backupPath = entries[0].Path
	}

	if _, err := os.Stat(path); err == nil {
		snapshot := fmt.Sprintf("%s.pre_restore_%s", path, r.now().Format(stampLayout))
		if err := copyFile(path, snapshot); err != nil {
			return "", fmt.Errorf("creating pre-restore snapshot: %w", err)
		}
	}

	if err := copyFile(backupPath, path); err != nil {
		return "", fmt.Errorf("restoring %s from %s: %w", path, backupPath, err)
	}
	return backupPath, nil
}

// prune applies the count cap and the age cap independently.
func (r *Rotator) prune(path string) error {
	entries, err := r.List(path)
	if err != nil {
		return err
	}

	cutoff := r.now().AddDate(0, 0, -r.cfg.RetentionDays)
	for i, e := range entries {
		if i < r.cfg.MaxBackups && !e.CreatedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(e.Path); err != nil {
			return fmt.Errorf("pruning backup %s: %w", e.Path, err)
		}
	}
	return nil
}

// parseStamp extracts the timestamp from a backup file name of the form
// <stem>_<stamp><ext>. File stems may themselves contain underscores.
func parseStamp(name, stem, ext string) (time.Time, bool) {
	prefix := stem + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	t, err := time.ParseInLocation(stampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

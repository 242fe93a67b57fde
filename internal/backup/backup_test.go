// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votersspeak/congress-sync/pkg/types"
)

func newTestRotator(t *testing.T, maxBackups, retentionDays int) (*Rotator, string, *time.Time) {
	t.Helper()
	dir := t.TempDir()
	r := NewRotator(types.BackupConfig{
		Dir:           filepath.Join(dir, "backups"),
		MaxBackups:    maxBackups,
		RetentionDays: retentionDays,
	})
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	r.now = func() time.Time { return clock }

	data := filepath.Join(dir, "congress_data.json")
	require.NoError(t, os.WriteFile(data, []byte(`{"house":[],"senate":[]}`), 0o644))
	return r, data, &clock
}

func TestCreate_CopiesByteForByte(t *testing.T) {
	r, data, _ := newTestRotator(t, 3, 30)

	path, err := r.Create(data)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "congress_data_20260301_100000")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, _ := os.ReadFile(data)
	assert.Equal(t, want, got)
}

func TestCreate_MissingSourceFails(t *testing.T) {
	r, data, _ := newTestRotator(t, 3, 30)
	_, err := r.Create(data + ".nope")
	assert.Error(t, err)
}

func TestRotation_CountCap(t *testing.T) {
	r, data, clock := newTestRotator(t, 3, 30)

	for i := 0; i < 12; i++ {
		*clock = clock.Add(time.Minute)
		_, err := r.Create(data)
		require.NoError(t, err)
	}

	entries, err := r.List(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first, and they are the three most recent creations.
	assert.Contains(t, entries[0].Path, "20260301_101200")
	assert.Contains(t, entries[1].Path, "20260301_101100")
	assert.Contains(t, entries[2].Path, "20260301_101000")
}

func TestRotation_AgeCapAppliesBelowCountCap(t *testing.T) {
	r, data, clock := newTestRotator(t, 10, 30)

	_, err := r.Create(data)
	require.NoError(t, err)

	// Jump forward past the retention window; the next create prunes the
	// old backup even though only two exist.
	*clock = clock.AddDate(0, 0, 31)
	_, err = r.Create(data)
	require.NoError(t, err)

	entries, err := r.List(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Path, "20260401_100000")
}

func TestList_IgnoresUnrelatedFiles(t *testing.T) {
	r, data, _ := newTestRotator(t, 3, 30)
	_, err := r.Create(data)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(r.cfg.Dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(r.cfg.Dir, "congress_data_garbage.json"), []byte("x"), 0o644))

	entries, err := r.List(data)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRestore_DefaultsToNewestAndSnapshotsCurrent(t *testing.T) {
	r, data, clock := newTestRotator(t, 5, 30)

	_, err := r.Create(data)
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	require.NoError(t, os.WriteFile(data, []byte(`{"house":[1],"senate":[]}`), 0o644))
	_, err = r.Create(data)
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	require.NoError(t, os.WriteFile(data, []byte(`corrupted`), 0o644))

	used, err := r.Restore(data, "")
	require.NoError(t, err)
	assert.Contains(t, used, "20260301_110000")

	restored, _ := os.ReadFile(data)
	assert.Equal(t, `{"house":[1],"senate":[]}`, string(restored))

	// The corrupted file survives as a pre-restore snapshot.
	snapshot := data + ".pre_restore_20260301_120000"
	snap, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, "corrupted", string(snap))
}

func TestRestore_ExplicitBackup(t *testing.T) {
	r, data, clock := newTestRotator(t, 5, 30)

	first, err := r.Create(data)
	require.NoError(t, err)
	*clock = clock.Add(time.Hour)
	require.NoError(t, os.WriteFile(data, []byte(`newer`), 0o644))
	_, err = r.Create(data)
	require.NoError(t, err)

	_, err = r.Restore(data, first)
	require.NoError(t, err)
	got, _ := os.ReadFile(data)
	assert.Equal(t, `{"house":[],"senate":[]}`, string(got))
}

func TestRestore_NoBackups(t *testing.T) {
	r, data, _ := newTestRotator(t, 5, 30)
	_, err := r.Restore(data, "")
	assert.ErrorContains(t, err, "no backups found")
}

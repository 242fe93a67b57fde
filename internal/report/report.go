// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders change reports for update runs. Reports are
// write-once markdown documents in an append-only directory, each with a
// YAML metadata sidecar and an optional HTML rendering.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/votersspeak/congress-sync/pkg/types"
)

const (
	stampLayout = "20060102_150405"

	// maxSameSecond bounds report name disambiguation within one second.
	maxSameSecond = 100
)

// Meta is the sidecar record describing one report.
type Meta struct {
	ID          string    `yaml:"id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	New         int       `yaml:"new"`
	Updated     int       `yaml:"updated"`
	Removed     int       `yaml:"removed"`
	Errors      int       `yaml:"errors"`
	Warnings    int       `yaml:"warnings"`
}

// Report points at the rendered files of one run.
type Report struct {
	Meta     Meta
	Path     string
	HTMLPath string
}

// Builder writes reports into a configured directory.
type Builder struct {
	cfg types.ReportConfig
	now func() time.Time
}

// NewBuilder returns a builder for the configured report directory.
func NewBuilder(cfg types.ReportConfig) *Builder {
	return &Builder{cfg: cfg, now: time.Now}
}

// Generate renders the diff and validation outcome to a new markdown report.
// The file is created exclusively: an existing report is never overwritten.
func (b *Builder) Generate(diff types.DiffResult, validation types.ValidationResult) (Report, error) {
	if err := os.MkdirAll(b.cfg.Dir, 0o755); err != nil {
		return Report{}, fmt.Errorf("creating report directory: %w", err)
	}

	generatedAt := b.now()
	stamp := generatedAt.Format(stampLayout)
	id := "update_report_" + stamp
	path := filepath.Join(b.cfg.Dir, id+".md")

	content := renderMarkdown(generatedAt, diff, validation)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	// Two runs in the same wall-clock second collide on the name; add a
	// sequence suffix instead of overwriting or failing the run.
	for seq := 2; errors.Is(err, fs.ErrExist) && seq <= maxSameSecond; seq++ {
		id = fmt.Sprintf("update_report_%s_%d", stamp, seq)
		path = filepath.Join(b.cfg.Dir, id+".md")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return Report{}, fmt.Errorf("creating report %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return Report{}, fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return Report{}, fmt.Errorf("writing report: %w", err)
	}

	added, updated, removed := diff.Counts()
	meta := Meta{
		ID:          id,
		GeneratedAt: generatedAt,
		New:         added,
		Updated:     updated,
		Removed:     removed,
		Errors:      len(validation.Errors),
		Warnings:    len(validation.Warnings),
	}
	if err := b.writeMeta(meta); err != nil {
		return Report{}, err
	}

	rep := Report{Meta: meta, Path: path}
	if b.cfg.HTML {
		htmlPath, err := b.RenderHTML(path)
		if err != nil {
			return Report{}, err
		}
		rep.HTMLPath = htmlPath
	}
	return rep, nil
}

func (b *Builder) writeMeta(meta Meta) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding report metadata: %w", err)
	}
	path := filepath.Join(b.cfg.Dir, meta.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report metadata: %w", err)
	}
	return nil
}

// List returns the metadata of every report on disk, newest first. Reports
// missing a sidecar get a minimal record derived from the file name.
func (b *Builder) List() ([]Meta, error) {
	entries, err := os.ReadDir(b.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report directory: %w", err)
	}

	var metas []Meta
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "update_report_") || !strings.HasSuffix(name, ".md") {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		meta, err := b.loadMeta(id)
		if err != nil {
			t, ok := idTime(id)
			if !ok {
				continue
			}
			meta = Meta{ID: id, GeneratedAt: t}
		}
		metas = append(metas, meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].GeneratedAt.After(metas[j].GeneratedAt)
	})
	return metas, nil
}

func (b *Builder) loadMeta(id string) (Meta, error) {
	data, err := os.ReadFile(filepath.Join(b.cfg.Dir, id+".yaml"))
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Meta{}, err
	}
	return meta, nil
}

// PathFor returns the markdown path for a report id, verifying it exists.
// The id is constrained to the report naming scheme so callers can pass
// untrusted input.
func (b *Builder) PathFor(id string) (string, error) {
	if !validID(id) {
		return "", fmt.Errorf("invalid report id %q", id)
	}
	path := filepath.Join(b.cfg.Dir, id+".md")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("report %s: %w", id, err)
	}
	return path, nil
}

func validID(id string) bool {
	_, ok := idTime(id)
	return ok
}

// idTime parses the timestamp out of a report id, which is
// update_report_<stamp> with an optional _<n> sequence suffix.
func idTime(id string) (time.Time, bool) {
	rest, found := strings.CutPrefix(id, "update_report_")
	if !found || len(rest) < len(stampLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(stampLayout, rest[:len(stampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	suffix := rest[len(stampLayout):]
	if suffix == "" {
		return t, true
	}
	seq, found := strings.CutPrefix(suffix, "_")
	if !found || seq == "" {
		return time.Time{}, false
	}
	for _, r := range seq {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}
	return t, true
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset persists the canonical roster snapshot. The on-disk
// format is a schema-tagged JSON document; legacy JavaScript-literal files
// written by earlier tooling are still readable and migrate to the new
// format on the next save.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// SchemaTag identifies the canonical snapshot format.
const SchemaTag = "congress-dataset/v1"

// document is the on-disk shape of a snapshot.
type document struct {
	Schema      string         `json:"schema"`
	GeneratedAt time.Time      `json:"generated_at"`
	House       []types.Member `json:"house"`
	Senate      []types.Member `json:"senate"`
}

// Store reads and writes the canonical dataset file.
type Store struct {
	path string
}

// NewStore returns a store for the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the current snapshot. A missing file returns (nil, nil): no
// prior dataset. An unreadable or unparseable file returns an error; the
// caller decides whether that degrades to no-prior or aborts.
func (s *Store) Load() (*types.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	if isLegacy(data) {
		ds, err := ParseLegacy(data)
		if err != nil {
			return nil, fmt.Errorf("parsing legacy dataset file %s: %w", s.path, err)
		}
		return ds, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset file %s: %w", s.path, err)
	}
	if doc.Schema != SchemaTag {
		return nil, fmt.Errorf("dataset file %s has unknown schema %q", s.path, doc.Schema)
	}
	return &types.Dataset{House: doc.House, Senate: doc.Senate}, nil
}

// Save writes the dataset atomically: the document lands in a temp file in
// the same directory and is renamed over the canonical path.
func (s *Store) Save(ds types.Dataset, generatedAt time.Time) error {
	doc := document{
		Schema:      SchemaTag,
		GeneratedAt: generatedAt.UTC(),
		House:       ds.House,
		Senate:      ds.Senate,
	}
	if doc.House == nil {
		doc.House = []types.Member{}
	}
	if doc.Senate == nil {
		doc.Senate = []types.Member{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dataset directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing dataset file: %w", err)
	}
	return nil
}

// isLegacy reports whether the file is one of the old JavaScript snapshot
// formats. The canonical format is a JSON document, so the first token
// decides: legacy files open with a variable declaration, not '{'. The
// declaration names may legitimately appear inside member data, so only
// the file head is inspected.
func isLegacy(data []byte) bool {
	i := 0
	for i < len(data) {
		switch {
		case isSpace(data[i]):
			i++
		case data[i] == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		default:
			return data[i] != '{'
		}
	}
	return false
}

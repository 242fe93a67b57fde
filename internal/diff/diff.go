// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diff compares dataset snapshots by bioguide identity and applies
// the sanity thresholds that gate persistence.
package diff

import (
	"github.com/google/go-cmp/cmp"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// Diff classifies the incoming dataset against the previous snapshot. With
// no prior snapshot the whole incoming dataset is new, verbatim. Members
// without a bioguide id cannot be matched and are excluded only from the
// old-vs-new comparison.
func Diff(incoming types.Dataset, old *types.Dataset) types.DiffResult {
	if old == nil {
		return types.DiffResult{New: incoming}
	}

	var result types.DiffResult
	result.New.House, result.Updated.House, result.Removed.House = diffChamber(incoming.House, old.House)
	result.New.Senate, result.Updated.Senate, result.Removed.Senate = diffChamber(incoming.Senate, old.Senate)
	return result
}

func diffChamber(incoming, old []types.Member) (added, updated, removed []types.Member) {
	oldByID := indexByID(old)
	newByID := indexByID(incoming)

	for _, m := range incoming {
		if m.BioguideID == "" {
			continue
		}
		prev, existed := oldByID[m.BioguideID]
		switch {
		case !existed:
			added = append(added, m)
		case !cmp.Equal(m, prev):
			// The incoming version is what the report shows.
			updated = append(updated, m)
		}
	}

	for _, m := range old {
		if m.BioguideID == "" {
			continue
		}
		if _, stillHere := newByID[m.BioguideID]; !stillHere {
			removed = append(removed, m)
		}
	}
	return added, updated, removed
}

func indexByID(members []types.Member) map[string]types.Member {
	byID := make(map[string]types.Member, len(members))
	for _, m := range members {
		if m.BioguideID != "" {
			byID[m.BioguideID] = m
		}
	}
	return byID
}

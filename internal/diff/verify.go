// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diff

import (
	"sort"

	"github.com/votersspeak/congress-sync/internal/validate"
	"github.com/votersspeak/congress-sync/pkg/types"
)

// Verify decides whether the incoming dataset is safe to persist. Basic
// validation runs first and a failure there stops everything else. With a
// prior snapshot, magnitude-of-change checks follow: a count delta past the
// error threshold rejects the update immediately, smaller swings and
// chamber moves only warn.
func Verify(incoming types.Dataset, old *types.Dataset, cfg types.VerifyConfig) (bool, types.ValidationResult) {
	ok, res := validate.Validate(incoming)
	if !ok {
		return false, res
	}

	if old == nil {
		return true, res
	}

	houseChange := abs(len(incoming.House) - len(old.House))
	if houseChange > cfg.HouseErrorDelta {
		res.Errorf("large change in House count: %d -> %d (change: %d)",
			len(old.House), len(incoming.House), houseChange)
		return false, res
	}
	if houseChange > cfg.HouseWarnDelta {
		res.Warnf("significant change in House count: %d -> %d (change: %d)",
			len(old.House), len(incoming.House), houseChange)
	}

	senateChange := abs(len(incoming.Senate) - len(old.Senate))
	if senateChange > cfg.SenateErrorDelta {
		res.Errorf("large change in Senate count: %d -> %d (change: %d)",
			len(old.Senate), len(incoming.Senate), senateChange)
		return false, res
	}
	if senateChange > cfg.SenateWarnDelta {
		res.Warnf("significant change in Senate count: %d -> %d (change: %d)",
			len(old.Senate), len(incoming.Senate), senateChange)
	}

	oldHouse := idSet(old.House)
	newHouse := idSet(incoming.House)
	oldSenate := idSet(old.Senate)
	newSenate := idSet(incoming.Senate)

	// A member serving in one chamber last run and the other this run is
	// unusual but legitimate (resignations, special elections).
	if moved := intersect(oldHouse, newSenate); len(moved) > 0 {
		res.Warnf("members moved from House to Senate: %v", moved)
	}
	if moved := intersect(oldSenate, newHouse); len(moved) > 0 {
		res.Warnf("members moved from Senate to House: %v", moved)
	}

	if n := countMissing(newHouse, oldHouse); n > cfg.HouseChurnWarn {
		res.Warnf("large number of new House members: %d", n)
	}
	if n := countMissing(newSenate, oldSenate); n > cfg.SenateChurnWarn {
		res.Warnf("large number of new Senate members: %d", n)
	}
	if n := countMissing(oldHouse, newHouse); n > cfg.HouseChurnWarn {
		res.Warnf("large number of removed House members: %d", n)
	}
	if n := countMissing(oldSenate, newSenate); n > cfg.SenateChurnWarn {
		res.Warnf("large number of removed Senate members: %d", n)
	}

	return res.OK(), res
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func idSet(members []types.Member) map[string]bool {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		if m.BioguideID != "" {
			set[m.BioguideID] = true
		}
	}
	return set
}

// intersect returns the sorted ids present in both sets.
func intersect(a, b map[string]bool) []string {
	var ids []string
	for id := range a {
		if b[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// countMissing counts ids in a that are absent from b.
func countMissing(a, b map[string]bool) int {
	n := 0
	for id := range a {
		if !b[id] {
			n++
		}
	}
	return n
}

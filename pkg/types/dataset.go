// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// Dataset is the full congressional roster. A nil chamber slice means the
// chamber was structurally absent from the source; an empty slice means it
// was present but had no members. The validator treats the two differently.
type Dataset struct {
	House  []Member `json:"house"`
	Senate []Member `json:"senate"`
}

// Total returns the combined member count.
func (d Dataset) Total() int {
	return len(d.House) + len(d.Senate)
}

// Empty reports whether the dataset holds no members at all.
func (d Dataset) Empty() bool {
	return d.Total() == 0
}

// Sort orders both chambers deterministically: House by state then district
// (integer districts before free-form ones, a missing district sorts as
// at-large), Senate by state then state rank.
func (d *Dataset) Sort() {
	sort.SliceStable(d.House, func(i, j int) bool {
		a, b := d.House[i], d.House[j]
		if a.State != b.State {
			return a.State < b.State
		}
		return districtLess(a.District, b.District)
	})
	sort.SliceStable(d.Senate, func(i, j int) bool {
		a, b := d.Senate[i], d.Senate[j]
		if a.State != b.State {
			return a.State < b.State
		}
		return a.StateRank < b.StateRank
	})
}

func districtLess(a, b *District) bool {
	an, ar := AtLarge, ""
	if a != nil {
		an, ar = a.Number, a.Raw
	}
	bn, br := AtLarge, ""
	if b != nil {
		bn, br = b.Number, b.Raw
	}
	// Integer districts sort before free-form ones.
	if (ar == "") != (br == "") {
		return ar == ""
	}
	if ar != "" {
		return ar < br
	}
	return an < bn
}

// DiffResult partitions an incoming dataset against the previous snapshot.
// Updated holds the incoming version of each changed member.
type DiffResult struct {
	New     Dataset `json:"new"`
	Updated Dataset `json:"updated"`
	Removed Dataset `json:"removed"`
}

// Empty reports whether the diff carries no changes.
func (d DiffResult) Empty() bool {
	return d.New.Empty() && d.Updated.Empty() && d.Removed.Empty()
}

// Counts returns the total new, updated, and removed member counts.
func (d DiffResult) Counts() (added, updated, removed int) {
	return d.New.Total(), d.Updated.Total(), d.Removed.Total()
}

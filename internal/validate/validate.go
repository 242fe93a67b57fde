// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks a transformed dataset against structural and
// semantic rules. It never mutates its input; problems come back as an
// accumulated result, errors fatal and warnings advisory.
package validate

import (
	"strconv"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// Plausible chamber sizes. Outside these bounds is a warning, not an error:
// vacancies and special elections move the real counts around.
const (
	houseMin  = 400
	houseMax  = 450
	senateMin = 90
	senateMax = 110
)

var expectedTitles = []string{"Representative", "Senator", "Delegate", "Resident Commissioner"}

// expectedParties is advisory only. New minor parties appear; an unknown
// party warns instead of failing the run.
var expectedParties = []string{
	"Republican", "Democrat", "Independent",
	"Democratic", "Republican Party", "Democratic Party", "Independent Party",
}

var expectedStateRanks = []string{"junior", "senior"}

// Validate checks the dataset and reports whether it passed. Structural
// failures short-circuit with a single error; otherwise every member is
// checked and all problems are collected before the verdict.
func Validate(ds types.Dataset) (bool, types.ValidationResult) {
	var res types.ValidationResult

	// A nil chamber means the collection was structurally absent from the
	// source document.
	if ds.House == nil {
		res.Errorf("dataset missing 'house' collection")
		return false, res
	}
	if ds.Senate == nil {
		res.Errorf("dataset missing 'senate' collection")
		return false, res
	}

	checkCounts(ds, &res)

	for i, m := range ds.House {
		validateMember(m, "House", i, &res)
		validateDistrict(m, i, &res)
	}
	for i, m := range ds.Senate {
		validateMember(m, "Senate", i, &res)
		if m.StateRank != "" && !contains(expectedStateRanks, m.StateRank) {
			res.Errorf("Senate member at index %d has field 'state_rank' with unexpected value: %s, expected one of %v",
				i, m.StateRank, expectedStateRanks)
		}
	}

	checkDuplicates(ds, &res)

	return res.OK(), res
}

func checkCounts(ds types.Dataset, res *types.ValidationResult) {
	if len(ds.House) < houseMin {
		res.Warnf("House count is low: %d (expected ~435)", len(ds.House))
	}
	if len(ds.House) > houseMax {
		res.Warnf("House count is high: %d (expected ~435)", len(ds.House))
	}
	if len(ds.Senate) < senateMin {
		res.Warnf("Senate count is low: %d (expected 100)", len(ds.Senate))
	}
	if len(ds.Senate) > senateMax {
		res.Warnf("Senate count is high: %d (expected 100)", len(ds.Senate))
	}
}

func validateMember(m types.Member, chamber string, index int, res *types.ValidationResult) {
	required := []struct {
		field string
		value string
	}{
		{"name", m.Name},
		{"title", m.Title},
		{"state", m.State},
		{"party", m.Party},
		{"bioguide_id", m.BioguideID},
	}
	for _, f := range required {
		if f.value == "" {
			res.Errorf("%s member at index %d has empty required field: %s", chamber, index, f.field)
		}
	}

	if m.Title != "" && !contains(expectedTitles, m.Title) {
		res.Errorf("%s member at index %d has field 'title' with unexpected value: %s, expected one of %v",
			chamber, index, m.Title, expectedTitles)
	}
	if m.Party != "" && !contains(expectedParties, m.Party) {
		res.Warnf("%s member at index %d has unexpected party: %s", chamber, index, m.Party)
	}
}

// validateDistrict flags House districts that are neither integers nor a
// recognized at-large spelling. Format problems are warnings: the value is
// preserved as-is and reported, never rewritten.
func validateDistrict(m types.Member, index int, res *types.ValidationResult) {
	if m.District == nil || m.District.IsInt() {
		return
	}
	raw := m.District.Raw
	if types.IsAtLargeText(raw) {
		return
	}
	if _, err := strconv.Atoi(raw); err == nil {
		return
	}
	res.Warnf("House member at index %d has district with unexpected format: %s", index, raw)
}

func checkDuplicates(ds types.Dataset, res *types.ValidationResult) {
	houseIDs := make(map[string]int, len(ds.House))
	for i, m := range ds.House {
		if m.BioguideID == "" {
			continue
		}
		if first, dup := houseIDs[m.BioguideID]; dup {
			res.Errorf("duplicate bioguide ID in house: %s at indices %d and %d", m.BioguideID, first, i)
		} else {
			houseIDs[m.BioguideID] = i
		}
	}

	senateIDs := make(map[string]int, len(ds.Senate))
	for i, m := range ds.Senate {
		if m.BioguideID == "" {
			continue
		}
		if first, dup := senateIDs[m.BioguideID]; dup {
			res.Errorf("duplicate bioguide ID in senate: %s at indices %d and %d", m.BioguideID, first, i)
		} else {
			senateIDs[m.BioguideID] = i
		}
	}

	// Cross-chamber duplicates, reported in House order for determinism.
	for i, m := range ds.House {
		if m.BioguideID == "" {
			continue
		}
		if houseIDs[m.BioguideID] != i {
			continue // only the first occurrence reports
		}
		if si, ok := senateIDs[m.BioguideID]; ok {
			res.Errorf("bioguide ID %s appears in both house (index %d) and senate (index %d)", m.BioguideID, i, si)
		}
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

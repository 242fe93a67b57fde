// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votersspeak/congress-sync/pkg/types"
)

func rep(id, state string, district int) types.Member {
	d := types.NewDistrict(district)
	return types.Member{
		Name: "Rep " + id, Title: "Representative", State: state,
		Party: "Democrat", BioguideID: id, District: &d,
	}
}

func sen(id, state, rank string) types.Member {
	return types.Member{
		Name: "Sen " + id, Title: "Senator", State: state,
		Party: "Republican", BioguideID: id, StateRank: rank,
	}
}

// fullDataset builds a roster at plausible size so count warnings stay out
// of the way of the behavior under test.
func fullDataset() types.Dataset {
	ds := types.Dataset{House: []types.Member{}, Senate: []types.Member{}}
	for i := 0; i < 435; i++ {
		ds.House = append(ds.House, rep(fmt.Sprintf("H%06d", i), "Texas", i))
	}
	for i := 0; i < 100; i++ {
		rank := "junior"
		if i%2 == 0 {
			rank = "senior"
		}
		ds.Senate = append(ds.Senate, sen(fmt.Sprintf("S%06d", i), "Ohio", rank))
	}
	return ds
}

func TestValidate_Passes(t *testing.T) {
	ok, res := Validate(fullDataset())
	assert.True(t, ok)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_MissingChamberShortCircuits(t *testing.T) {
	ok, res := Validate(types.Dataset{Senate: []types.Member{sen("S1", "Ohio", "junior")}})
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "house")
	assert.Empty(t, res.Warnings)

	ok, res = Validate(types.Dataset{House: []types.Member{}})
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "senate")
}

func TestValidate_CountWarnings(t *testing.T) {
	ds := types.Dataset{
		House:  []types.Member{rep("H1", "Alaska", 0)},
		Senate: []types.Member{sen("S1", "Ohio", "junior")},
	}
	ok, res := Validate(ds)
	assert.True(t, ok, "count problems are warnings, not errors")
	assert.Contains(t, res.Warnings, "House count is low: 1 (expected ~435)")
	assert.Contains(t, res.Warnings, "Senate count is low: 1 (expected 100)")
}

func TestValidate_EmptyRequiredField(t *testing.T) {
	ds := fullDataset()
	ds.House[3].Party = ""
	ok, res := Validate(ds)
	assert.False(t, ok)
	assert.Contains(t, res.Errors, "House member at index 3 has empty required field: party")
}

func TestValidate_UnexpectedTitleIsError(t *testing.T) {
	ds := fullDataset()
	ds.Senate[0].Title = "Governor"
	ok, res := Validate(ds)
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "'title' with unexpected value: Governor")
}

func TestValidate_UnexpectedPartyIsWarning(t *testing.T) {
	ds := fullDataset()
	ds.House[10].Party = "Bull Moose"
	ok, res := Validate(ds)
	assert.True(t, ok)
	assert.Contains(t, res.Warnings, "House member at index 10 has unexpected party: Bull Moose")
}

func TestValidate_UnexpectedStateRankIsError(t *testing.T) {
	ds := fullDataset()
	ds.Senate[5].StateRank = "middle"
	ok, res := Validate(ds)
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "'state_rank' with unexpected value: middle")
}

func TestValidate_DistrictFormat(t *testing.T) {
	ds := fullDataset()
	ds.House[0].District = &types.District{Raw: "At Large"}
	ds.House[1].District = &types.District{Raw: "7"}
	ds.House[2].District = &types.District{Raw: "Fifth"}
	ds.House[3].District = nil

	ok, res := Validate(ds)
	assert.True(t, ok)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "House member at index 2 has district with unexpected format: Fifth", res.Warnings[0])
}

func TestValidate_DuplicateWithinChamber(t *testing.T) {
	ds := fullDataset()
	ds.House[7].BioguideID = ds.House[2].BioguideID
	ok, res := Validate(ds)
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Equal(t,
		fmt.Sprintf("duplicate bioguide ID in house: %s at indices 2 and 7", ds.House[2].BioguideID),
		res.Errors[0])
}

func TestValidate_DuplicateAcrossChambers(t *testing.T) {
	ds := fullDataset()
	ds.Senate[4].BioguideID = ds.House[9].BioguideID
	ok, res := Validate(ds)
	assert.False(t, ok)
	require.Len(t, res.Errors, 1)
	assert.Equal(t,
		fmt.Sprintf("bioguide ID %s appears in both house (index 9) and senate (index 4)", ds.House[9].BioguideID),
		res.Errors[0])
}

func TestValidate_EmptyBioguideSkipsDuplicateCheck(t *testing.T) {
	ds := fullDataset()
	ds.House[0].BioguideID = ""
	ds.House[1].BioguideID = ""
	_, res := Validate(ds)
	// The empty ids report as missing-field errors, not duplicates.
	for _, e := range res.Errors {
		assert.NotContains(t, e, "duplicate")
	}
}

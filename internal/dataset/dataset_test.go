// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votersspeak/congress-sync/pkg/types"
)

func testDataset() types.Dataset {
	d := types.NewDistrict(3)
	m := types.Member{
		Name: "Jane Doe", Title: "Representative", State: "Ohio",
		Party: "Democrat", BioguideID: "D000001", District: &d,
		Phone: "202-225-0001",
	}
	m.SetExtra("govtrack_id", json.Number("400001"))
	return types.Dataset{
		House: []types.Member{m},
		Senate: []types.Member{{
			Name: "John Roe", Title: "Senator", State: "Vermont",
			Party: "Independent", BioguideID: "R000001", StateRank: "senior",
		}},
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "congress_data.json"))
	ds, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, ds)
	assert.False(t, s.Exists())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "congress_data.json"))
	want := testDataset()

	require.NoError(t, s.Save(want, time.Now()))
	require.True(t, s.Exists())

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_SaveTagsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "congress_data.json")
	s := NewStore(path)
	require.NoError(t, s.Save(testDataset(), time.Now()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, SchemaTag, doc["schema"])
	assert.Contains(t, doc, "generated_at")
}

func TestStore_LoadUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "congress_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{nonsense"), 0o644))
	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStore_LoadUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "congress_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema":"congress-dataset/v9","house":[],"senate":[]}`), 0o644))
	_, err := NewStore(path).Load()
	assert.ErrorContains(t, err, "unknown schema")
}

func TestStore_SaveEmptyChambersStayPresent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "congress_data.json"))
	require.NoError(t, s.Save(types.Dataset{}, time.Now()))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.House, "saved snapshot always carries both collections")
	assert.NotNil(t, got.Senate)
}

const legacyCombined = `// Complete congressional data
const completeCongressData = {
  house: [
    {
      name: 'Jane Doe',
      title: "Representative",
      state: 'Ohio',
      party: 'Democrat',
      bioguide_id: 'D000001',
      district: 3,
      govtrack_id: 400001,
      notes: 'string with { braces } inside',
    },
  ],
  senate: [
    {
      name: "John \"Jack\" Roe",
      title: 'Senator',
      state: 'Vermont',
      party: 'Independent',
      bioguide_id: 'R000001',
      state_rank: 'senior'
    }
  ]
};
`

func TestParseLegacy_CombinedFormat(t *testing.T) {
	ds, err := ParseLegacy([]byte(legacyCombined))
	require.NoError(t, err)
	require.Len(t, ds.House, 1)
	require.Len(t, ds.Senate, 1)

	h := ds.House[0]
	assert.Equal(t, "Jane Doe", h.Name)
	require.NotNil(t, h.District)
	assert.Equal(t, 3, h.District.Number)
	assert.Equal(t, json.Number("400001"), h.Extra["govtrack_id"])
	assert.Equal(t, "string with { braces } inside", h.Extra["notes"])

	assert.Equal(t, `John "Jack" Roe`, ds.Senate[0].Name)
	assert.Equal(t, "senior", ds.Senate[0].StateRank)
}

const legacySeparate = `const completeHouseData = [
  {name: 'A', title: 'Representative', state: 'Alaska', party: 'Republican', bioguide_id: 'A1', district: 0}
];

const completeSenateData = [
  {name: 'B', title: 'Senator', state: 'Alaska', party: 'Republican', bioguide_id: 'B1', state_rank: 'junior'}
];
`

func TestParseLegacy_SeparateFormat(t *testing.T) {
	ds, err := ParseLegacy([]byte(legacySeparate))
	require.NoError(t, err)
	require.Len(t, ds.House, 1)
	require.Len(t, ds.Senate, 1)
	assert.Equal(t, "A1", ds.House[0].BioguideID)
	assert.Equal(t, types.AtLarge, ds.House[0].District.Number)
}

func TestParseLegacy_UnsupportedFormat(t *testing.T) {
	_, err := ParseLegacy([]byte(`var somethingElse = [];`))
	assert.ErrorContains(t, err, "unsupported legacy file format")
}

func TestParseLegacy_Malformed(t *testing.T) {
	_, err := ParseLegacy([]byte(`const completeCongressData = {house: [{name: 'x'`))
	assert.Error(t, err)
}

func TestStore_LegacyNamesInsideDataStayJSON(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "congress_data.json"))
	want := testDataset()
	want.House[0].SetExtra("notes", "migrated from completeCongressData")
	require.NoError(t, s.Save(want, time.Now()))

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_LoadLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "congress_data.js")
	require.NoError(t, os.WriteFile(path, []byte(legacyCombined), 0o644))

	s := NewStore(path)
	ds, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Len(t, ds.House, 1)

	// Saving migrates the snapshot to the tagged JSON format.
	require.NoError(t, s.Save(*ds, time.Now()))
	raw, _ := os.ReadFile(path)
	assert.Contains(t, string(raw), SchemaTag)

	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, *ds, *again)
}

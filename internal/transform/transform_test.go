// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// fixedNow falls inside the 2023-2025 terms used by the fixtures.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func currentTerm(termType, state string) RawTerm {
	return RawTerm{
		Type:  termType,
		Start: "2023-01-03",
		End:   "2025-01-03",
		State: state,
		Party: "Democrat",
	}
}

func legislator(bioguide string, terms ...RawTerm) RawLegislator {
	return RawLegislator{
		ID:    map[string]any{"bioguide": bioguide},
		Name:  &RawName{First: "Pat", Last: "Example"},
		Terms: terms,
	}
}

func TestTransform_CurrentSenator(t *testing.T) {
	term := currentTerm("sen", "VT")
	term.StateRank = "junior"
	term.Phone = "202-224-0001"
	rec := legislator("E000001", term)
	rec.Name.OfficialFull = "Patricia Example"
	rec.ID["govtrack"] = json.Number("400123")
	rec.ID["thomas"] = "" // empty ids are dropped

	ds, res := Transform([]RawLegislator{rec}, nil, Options{Now: fixedNow})

	require.Len(t, ds.Senate, 1)
	assert.Empty(t, ds.House)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	m := ds.Senate[0]
	assert.Equal(t, "Patricia Example", m.Name)
	assert.Equal(t, "Senator", m.Title)
	assert.Equal(t, "Vermont", m.State)
	assert.Equal(t, "junior", m.StateRank)
	assert.Equal(t, "202-224-0001", m.Phone)
	assert.Equal(t, json.Number("400123"), m.Extra["govtrack_id"])
	assert.NotContains(t, m.Extra, "thomas_id")
	assert.Nil(t, m.District)
}

func TestTransform_ExpiredTermSkippedSilently(t *testing.T) {
	expired := RawTerm{Type: "rep", Start: "2019-01-03", End: "2021-01-03", State: "OH"}
	ds, res := Transform([]RawLegislator{legislator("X000001", expired)}, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, ds.Total())
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestTransform_MalformedDatesNotCurrent(t *testing.T) {
	bad := RawTerm{Type: "rep", Start: "not-a-date", End: "2025-01-03", State: "OH"}
	ds, res := Transform([]RawLegislator{legislator("X000002", bad)}, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, ds.Total())
	assert.Empty(t, res.Errors)
}

func TestTransform_NoTermsWarns(t *testing.T) {
	ds, res := Transform([]RawLegislator{legislator("N000001")}, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, ds.Total())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "N000001")
}

func TestTransform_AtLargeDistrict(t *testing.T) {
	term := currentTerm("rep", "AK")
	term.District = "At Large"
	ds, _ := Transform([]RawLegislator{legislator("A000001", term)}, nil, Options{Now: fixedNow})

	require.Len(t, ds.House, 1)
	require.NotNil(t, ds.House[0].District)
	assert.True(t, ds.House[0].District.IsInt())
	assert.Equal(t, types.AtLarge, ds.House[0].District.Number)
}

func TestTransform_DistrictVariants(t *testing.T) {
	cases := []struct {
		value any
		want  types.District
	}{
		{json.Number("12"), types.District{Number: 12}},
		{"3", types.District{Number: 3}},
		{"at-large", types.District{Number: 0}},
		{"Fifth", types.District{Raw: "Fifth"}},
	}
	for _, tc := range cases {
		term := currentTerm("rep", "TX")
		term.District = tc.value
		ds, _ := Transform([]RawLegislator{legislator("D000009", term)}, nil, Options{Now: fixedNow})
		require.Len(t, ds.House, 1)
		require.NotNil(t, ds.House[0].District)
		assert.Equal(t, tc.want, *ds.House[0].District, "district value %v", tc.value)
	}
}

func TestTransform_MissingRequiredFieldsDropRecordOnly(t *testing.T) {
	noState := currentTerm("rep", "")
	bad := legislator("B000001", noState)
	good := legislator("G000001", currentTerm("rep", "WY"))

	ds, res := Transform([]RawLegislator{bad, good}, nil, Options{Now: fixedNow})

	require.Len(t, ds.House, 1)
	assert.Equal(t, "G000001", ds.House[0].BioguideID)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "B000001")
}

func TestTransform_MissingName(t *testing.T) {
	rec := legislator("M000001", currentTerm("sen", "ME"))
	rec.Name = nil
	ds, res := Transform([]RawLegislator{rec}, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, ds.Total())
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "missing name")
}

func TestTransform_UnknownTermTypeWarns(t *testing.T) {
	ds, res := Transform([]RawLegislator{legislator("U000001", currentTerm("gov", "NY"))}, nil, Options{Now: fixedNow})

	assert.Equal(t, 0, ds.Total())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `unknown term type "gov"`)
}

func TestTransform_NameJoinsParts(t *testing.T) {
	rec := legislator("J000001", currentTerm("sen", "RI"))
	rec.Name = &RawName{First: "Ana", Middle: "", Last: "Borges", Suffix: "Jr."}
	ds, _ := Transform([]RawLegislator{rec}, nil, Options{Now: fixedNow})

	require.Len(t, ds.Senate, 1)
	assert.Equal(t, "Ana Borges Jr.", ds.Senate[0].Name)
}

func TestTransform_UnknownStatePassesThrough(t *testing.T) {
	ds, _ := Transform([]RawLegislator{legislator("Z000001", currentTerm("sen", "ZZ"))}, nil, Options{Now: fixedNow})
	require.Len(t, ds.Senate, 1)
	assert.Equal(t, "ZZ", ds.Senate[0].State)
}

func TestTransform_SocialMediaMerged(t *testing.T) {
	social := map[string]Social{
		"S000001": {Twitter: "SenExample", YouTube: "senexample"},
	}
	ds, _ := Transform([]RawLegislator{legislator("S000001", currentTerm("sen", "OR"))}, social, Options{Now: fixedNow})

	require.Len(t, ds.Senate, 1)
	assert.Equal(t, "SenExample", ds.Senate[0].Twitter)
	assert.Equal(t, "senexample", ds.Senate[0].YouTube)
	assert.Empty(t, ds.Senate[0].Facebook)
}

func TestTransform_OutputSorted(t *testing.T) {
	mkRep := func(id, state string, district int) RawLegislator {
		term := currentTerm("rep", state)
		term.District = json.Number(jsonInt(district))
		return legislator(id, term)
	}
	ds, _ := Transform([]RawLegislator{
		mkRep("R3", "TX", 2),
		mkRep("R1", "AK", 0),
		mkRep("R2", "TX", 1),
	}, nil, Options{Now: fixedNow})

	require.Len(t, ds.House, 3)
	assert.Equal(t, "R1", ds.House[0].BioguideID)
	assert.Equal(t, "R2", ds.House[1].BioguideID)
	assert.Equal(t, "R3", ds.House[2].BioguideID)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestParseLegislators_KeepsNumbersVerbatim(t *testing.T) {
	data := []byte(`[{"id": {"bioguide": "B1", "govtrack": 412345}, "name": {"first": "A", "last": "B"}, "terms": []}]`)
	recs, err := ParseLegislators(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, json.Number("412345"), recs[0].ID["govtrack"])
}

func TestParseLegislators_Malformed(t *testing.T) {
	_, err := ParseLegislators([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

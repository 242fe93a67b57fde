// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform maps raw upstream legislator records into the
// application's member schema. It is pure: no I/O, and the clock used for
// term-currency checks is injected so runs are reproducible under test.
package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/votersspeak/congress-sync/pkg/types"
)

const termDateLayout = "2006-01-02"

// xrefIDs is the whitelist of id systems copied onto members, each suffixed
// "_id" on the output record.
var xrefIDs = []string{"thomas", "govtrack", "opensecrets", "votesmart", "wikipedia"}

// Options controls a transform call.
type Options struct {
	// Now is the date used for term-currency checks. Zero means time.Now().
	Now time.Time
}

// Transform maps raw legislator records into a sorted Dataset. Problems with
// individual records accumulate in the returned ValidationResult and never
// abort the batch: a bad record is dropped, the rest proceed.
func Transform(records []RawLegislator, social map[string]Social, opts Options) (types.Dataset, types.ValidationResult) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	ds := types.Dataset{House: []types.Member{}, Senate: []types.Member{}}
	var res types.ValidationResult

	for _, rec := range records {
		if len(rec.Terms) == 0 {
			res.Warnf("legislator has no terms: %s", bioguideOrUnknown(rec))
			continue
		}

		term := rec.Terms[len(rec.Terms)-1]
		if !termCurrent(term, today) {
			continue
		}

		member, err := transformOne(rec, term, social)
		if err != nil {
			res.Errorf("transforming legislator %s: %v", bioguideOrUnknown(rec), err)
			continue
		}

		switch term.Type {
		case "sen":
			ds.Senate = append(ds.Senate, member)
		case "rep":
			ds.House = append(ds.House, member)
		default:
			res.Warnf("unknown term type %q for %s", term.Type, bioguideOrUnknown(rec))
		}
	}

	ds.Sort()
	return ds, res
}

func bioguideOrUnknown(rec RawLegislator) string {
	if id := rec.Bioguide(); id != "" {
		return id
	}
	return "unknown"
}

// termCurrent reports whether today falls within the term's date range,
// inclusive on both ends. Missing or malformed dates count as not current.
func termCurrent(term RawTerm, today time.Time) bool {
	if term.Start == "" || term.End == "" {
		return false
	}
	start, err := time.ParseInLocation(termDateLayout, term.Start, time.UTC)
	if err != nil {
		return false
	}
	end, err := time.ParseInLocation(termDateLayout, term.End, time.UTC)
	if err != nil {
		return false
	}
	return !today.Before(start) && !today.After(end)
}

func transformOne(rec RawLegislator, term RawTerm, social map[string]Social) (types.Member, error) {
	bioguide := rec.Bioguide()
	if bioguide == "" {
		return types.Member{}, errors.New("missing bioguide ID")
	}
	if rec.Name == nil {
		return types.Member{}, fmt.Errorf("missing name for %s", bioguide)
	}
	if term.State == "" {
		return types.Member{}, fmt.Errorf("missing state for %s", bioguide)
	}

	m := types.Member{
		Name:       fullName(*rec.Name),
		Title:      titleFor(term),
		State:      StateName(term.State),
		Party:      term.Party,
		BioguideID: bioguide,
	}
	if m.Party == "" {
		m.Party = "Unknown"
	}

	if term.Type == "rep" {
		m.District = parseDistrict(term.District)
	}
	if term.Type == "sen" {
		m.StateRank = term.StateRank
	}

	// Contact and social fields are copied only when non-empty; absent
	// fields stay absent in the serialized member.
	m.Phone = term.Phone
	m.Address = term.Address
	m.Office = term.Office
	m.URL = term.URL
	m.ContactForm = term.ContactForm

	if s, ok := social[bioguide]; ok {
		m.Twitter = s.Twitter
		m.Facebook = s.Facebook
		m.YouTube = s.YouTube
		m.Instagram = s.Instagram
	}

	for _, system := range xrefIDs {
		v, ok := rec.ID[system]
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		if v == nil {
			continue
		}
		m.SetExtra(system+"_id", v)
	}

	return m, nil
}

// fullName prefers the official full name and otherwise joins the non-empty
// name parts with single spaces.
func fullName(name RawName) string {
	if name.OfficialFull != "" {
		return name.OfficialFull
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{name.First, name.Middle, name.Last, name.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func titleFor(term RawTerm) string {
	switch term.Type {
	case "sen":
		return "Senator"
	case "rep":
		return "Representative"
	}
	if term.Title != "" {
		return term.Title
	}
	return "Member"
}

// parseDistrict normalizes a House district value: integers parse as
// numbers, at-large spellings map to district 0, and anything else is kept
// verbatim for the validator to flag.
func parseDistrict(v any) *types.District {
	switch d := v.(type) {
	case nil:
		return nil
	case json.Number:
		if n, err := strconv.Atoi(d.String()); err == nil {
			return &types.District{Number: n}
		}
		return &types.District{Raw: d.String()}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(d)); err == nil {
			return &types.District{Number: n}
		}
		if types.IsAtLargeText(d) {
			return &types.District{Number: types.AtLarge}
		}
		return &types.District{Raw: d}
	default:
		return &types.District{Raw: fmt.Sprintf("%v", v)}
	}
}

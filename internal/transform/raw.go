// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawLegislator is one record of the upstream legislators schema. Only the
// portions the transformer consumes are typed; the id block stays dynamic
// because its value types vary by id system.
type RawLegislator struct {
	ID    map[string]any `json:"id"`
	Name  *RawName       `json:"name"`
	Terms []RawTerm      `json:"terms"`
}

// Bioguide returns the canonical cross-reference key, or "" when absent.
func (l RawLegislator) Bioguide() string {
	if s, ok := l.ID["bioguide"].(string); ok {
		return s
	}
	return ""
}

// RawName is the upstream name block.
type RawName struct {
	First        string `json:"first"`
	Middle       string `json:"middle"`
	Last         string `json:"last"`
	Suffix       string `json:"suffix"`
	OfficialFull string `json:"official_full"`
}

// RawTerm is one service term. District is dynamic: the upstream feed
// carries integers but older exports have been seen with strings.
type RawTerm struct {
	Type        string `json:"type"`
	Start       string `json:"start"`
	End         string `json:"end"`
	State       string `json:"state"`
	District    any    `json:"district"`
	StateRank   string `json:"state_rank"`
	Party       string `json:"party"`
	Title       string `json:"title"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Office      string `json:"office"`
	URL         string `json:"url"`
	ContactForm string `json:"contact_form"`
}

// RawSocial is one record of the upstream social-media feed, keyed by the
// same id system as the legislators feed.
type RawSocial struct {
	ID struct {
		Bioguide string `json:"bioguide"`
	} `json:"id"`
	Social Social `json:"social"`
}

// Social holds the handles carried onto a transformed member.
type Social struct {
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	YouTube   string `json:"youtube"`
	Instagram string `json:"instagram"`
}

// ParseLegislators decodes an upstream legislators JSON array. Numbers are
// kept as json.Number so cross-reference ids survive byte-for-byte.
func ParseLegislators(data []byte) ([]RawLegislator, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []RawLegislator
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing legislators JSON: %w", err)
	}
	return records, nil
}

// ParseSocialMedia decodes the upstream social-media JSON array.
func ParseSocialMedia(data []byte) ([]RawSocial, error) {
	var records []RawSocial
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing social media JSON: %w", err)
	}
	return records, nil
}

// SocialLookup indexes social-media records by bioguide id. Records without
// a bioguide id are dropped; they cannot be matched to a member.
func SocialLookup(records []RawSocial) map[string]Social {
	lookup := make(map[string]Social, len(records))
	for _, r := range records {
		if r.ID.Bioguide != "" {
			lookup[r.ID.Bioguide] = r.Social
		}
	}
	return lookup
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the member and dataset schema shared by every stage
// of the sync pipeline, plus the configuration structs the stages consume.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AtLarge is the district number used for at-large House seats.
const AtLarge = 0

// District is a House district value. The upstream feed carries integers,
// but snapshots written by earlier tooling have been seen with free-form
// strings; those are kept verbatim in Raw so a load/save cycle never
// rewrites them.
type District struct {
	Number int
	Raw    string
}

// NewDistrict returns an integer district value.
func NewDistrict(n int) District {
	return District{Number: n}
}

// IsInt reports whether the district holds an integer value.
func (d District) IsInt() bool {
	return d.Raw == ""
}

func (d District) String() string {
	if d.Raw != "" {
		return d.Raw
	}
	return strconv.Itoa(d.Number)
}

func (d District) MarshalJSON() ([]byte, error) {
	if d.Raw != "" {
		return json.Marshal(d.Raw)
	}
	return json.Marshal(d.Number)
}

func (d *District) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty district value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = District{Raw: s}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("district must be an integer or string: %w", err)
	}
	*d = District{Number: n}
	return nil
}

// IsAtLargeText reports whether s is a recognized at-large spelling.
func IsAtLargeText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "at large", "at-large":
		return true
	}
	return false
}

// Member is one record of the canonical dataset. Fields not in the struct
// survive in Extra so snapshots written by other tooling round-trip without
// losing data.
type Member struct {
	Name       string
	Title      string
	State      string
	Party      string
	BioguideID string

	// District is set for House members only; nil means absent.
	District *District

	// StateRank is set for senators only ("junior" or "senior").
	StateRank string

	Phone       string
	Address     string
	Office      string
	URL         string
	ContactForm string

	Twitter   string
	Facebook  string
	YouTube   string
	Instagram string

	// Extra holds passthrough fields (cross-reference ids and anything a
	// snapshot carried that the schema does not name). Numbers are stored
	// as json.Number so they serialize back byte-for-byte.
	Extra map[string]any
}

// SetExtra records a passthrough field, allocating the map on first use.
func (m *Member) SetExtra(key string, value any) {
	if m.Extra == nil {
		m.Extra = make(map[string]any)
	}
	m.Extra[key] = value
}

// memberField binds a JSON key to a Member string field. Required fields
// serialize even when empty; optional fields are omitted when empty.
type memberField struct {
	key      string
	required bool
	ref      func(*Member) *string
}

var memberFields = []memberField{
	{"name", true, func(m *Member) *string { return &m.Name }},
	{"title", true, func(m *Member) *string { return &m.Title }},
	{"state", true, func(m *Member) *string { return &m.State }},
	{"party", true, func(m *Member) *string { return &m.Party }},
	{"bioguide_id", true, func(m *Member) *string { return &m.BioguideID }},
	{"state_rank", false, func(m *Member) *string { return &m.StateRank }},
	{"phone", false, func(m *Member) *string { return &m.Phone }},
	{"address", false, func(m *Member) *string { return &m.Address }},
	{"office", false, func(m *Member) *string { return &m.Office }},
	{"url", false, func(m *Member) *string { return &m.URL }},
	{"contact_form", false, func(m *Member) *string { return &m.ContactForm }},
	{"twitter", false, func(m *Member) *string { return &m.Twitter }},
	{"facebook", false, func(m *Member) *string { return &m.Facebook }},
	{"youtube", false, func(m *Member) *string { return &m.YouTube }},
	{"instagram", false, func(m *Member) *string { return &m.Instagram }},
}

func (m Member) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(memberFields)+len(m.Extra)+1)
	for _, f := range memberFields {
		v := *f.ref(&m)
		if f.required || v != "" {
			obj[f.key] = v
		}
	}
	if m.District != nil {
		obj["district"] = m.District
	}
	for k, v := range m.Extra {
		if _, taken := obj[k]; !taken {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

func (m *Member) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Member{}
	known := make(map[string]bool, len(memberFields)+1)
	for _, f := range memberFields {
		known[f.key] = true
		msg, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, f.ref(m)); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
	}

	known["district"] = true
	if msg, ok := raw["district"]; ok && !bytes.Equal(msg, []byte("null")) {
		var d District
		if err := json.Unmarshal(msg, &d); err != nil {
			return err
		}
		m.District = &d
	}

	for k, msg := range raw {
		if known[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		m.SetExtra(k, v)
	}
	return nil
}

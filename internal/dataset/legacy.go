// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/votersspeak/congress-sync/pkg/types"
)

// ParseLegacy reads a snapshot in the old JavaScript-literal form: either a
// single `completeCongressData = {house: [...], senate: [...]}` object or a
// pair of `completeHouseData` / `completeSenateData` arrays. The grammar is
// JSON extended with unquoted keys, single-quoted strings, trailing commas,
// and line comments; string values may contain braces and quotes.
func ParseLegacy(data []byte) (*types.Dataset, error) {
	src := string(data)

	if idx := indexOfAssign(src, "completeCongressData"); idx >= 0 {
		sc := &scanner{src: src, pos: idx}
		v, err := sc.value()
		if err != nil {
			return nil, err
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("completeCongressData is not an object")
		}
		house, err := membersFrom(obj["house"], "house")
		if err != nil {
			return nil, err
		}
		senate, err := membersFrom(obj["senate"], "senate")
		if err != nil {
			return nil, err
		}
		return &types.Dataset{House: house, Senate: senate}, nil
	}

	houseIdx := indexOfAssign(src, "completeHouseData")
	senateIdx := indexOfAssign(src, "completeSenateData")
	if houseIdx < 0 || senateIdx < 0 {
		return nil, fmt.Errorf("unsupported legacy file format")
	}

	houseVal, err := (&scanner{src: src, pos: houseIdx}).value()
	if err != nil {
		return nil, err
	}
	senateVal, err := (&scanner{src: src, pos: senateIdx}).value()
	if err != nil {
		return nil, err
	}
	house, err := membersFrom(houseVal, "completeHouseData")
	if err != nil {
		return nil, err
	}
	senate, err := membersFrom(senateVal, "completeSenateData")
	if err != nil {
		return nil, err
	}
	return &types.Dataset{House: house, Senate: senate}, nil
}

// membersFrom converts a scanned array of objects into typed members by
// round-tripping each through JSON, which routes unknown fields into Extra.
func membersFrom(v any, label string) ([]types.Member, error) {
	if v == nil {
		return nil, fmt.Errorf("missing %s collection", label)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not an array", label)
	}
	members := make([]types.Member, 0, len(arr))
	for i, item := range arr {
		encoded, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", label, i, err)
		}
		var m types.Member
		if err := json.Unmarshal(encoded, &m); err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", label, i, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// indexOfAssign finds `name` followed by `=` and returns the position of
// the assigned value, or -1.
func indexOfAssign(src, name string) int {
	for start := 0; ; {
		i := indexFrom(src, name, start)
		if i < 0 {
			return -1
		}
		j := i + len(name)
		for j < len(src) && isSpace(src[j]) {
			j++
		}
		if j < len(src) && src[j] == '=' {
			return j + 1
		}
		start = i + len(name)
	}
}

func indexFrom(s, sub string, from int) int {
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// scanner is a recursive-descent reader for the legacy literal grammar.
type scanner struct {
	src string
	pos int
}

func (s *scanner) errf(format string, args ...any) error {
	return fmt.Errorf("legacy parse at offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

func (s *scanner) skip() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if isSpace(c) {
			s.pos++
			continue
		}
		if c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		return
	}
}

func (s *scanner) peek() (byte, error) {
	s.skip()
	if s.pos >= len(s.src) {
		return 0, s.errf("unexpected end of input")
	}
	return s.src[s.pos], nil
}

func (s *scanner) value() (any, error) {
	c, err := s.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case c == '{':
		return s.object()
	case c == '[':
		return s.array()
	case c == '"' || c == '\'':
		return s.stringLit(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return s.number()
	default:
		return s.keyword()
	}
}

func (s *scanner) object() (map[string]any, error) {
	s.pos++ // consume '{'
	obj := make(map[string]any)
	for {
		c, err := s.peek()
		if err != nil {
			return nil, err
		}
		if c == '}' {
			s.pos++
			return obj, nil
		}

		key, err := s.key()
		if err != nil {
			return nil, err
		}
		c, err = s.peek()
		if err != nil {
			return nil, err
		}
		if c != ':' {
			return nil, s.errf("expected ':' after key %q", key)
		}
		s.pos++

		v, err := s.value()
		if err != nil {
			return nil, err
		}
		obj[key] = v

		c, err = s.peek()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			s.pos++ // trailing comma before '}' is tolerated
		case '}':
		default:
			return nil, s.errf("expected ',' or '}' in object, got %q", c)
		}
	}
}

func (s *scanner) array() ([]any, error) {
	s.pos++ // consume '['
	arr := []any{}
	for {
		c, err := s.peek()
		if err != nil {
			return nil, err
		}
		if c == ']' {
			s.pos++
			return arr, nil
		}

		v, err := s.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		c, err = s.peek()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			s.pos++
		case ']':
		default:
			return nil, s.errf("expected ',' or ']' in array, got %q", c)
		}
	}
}

// key reads an object key: quoted or a bare identifier.
func (s *scanner) key() (string, error) {
	c, err := s.peek()
	if err != nil {
		return "", err
	}
	if c == '"' || c == '\'' {
		return s.stringLit(c)
	}
	start := s.pos
	for s.pos < len(s.src) && isIdent(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.errf("expected object key")
	}
	return s.src[start:s.pos], nil
}

// stringLit reads a quoted string, honoring backslash escapes. Braces,
// brackets, and the other quote character are plain content.
func (s *scanner) stringLit(quote byte) (string, error) {
	s.pos++ // consume opening quote
	var out []byte
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case quote:
			s.pos++
			return string(out), nil
		case '\\':
			if s.pos+1 >= len(s.src) {
				return "", s.errf("unterminated escape")
			}
			s.pos++
			esc := s.src[s.pos]
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, esc)
			}
			s.pos++
		default:
			out = append(out, c)
			s.pos++
		}
	}
	return "", s.errf("unterminated string")
}

// number reads a numeric literal and keeps it as json.Number so it
// re-serializes byte-for-byte.
func (s *scanner) number() (json.Number, error) {
	start := s.pos
	if s.src[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			s.pos++
			continue
		}
		break
	}
	lit := s.src[start:s.pos]
	if lit == "" || lit == "-" {
		return "", s.errf("malformed number")
	}
	return json.Number(lit), nil
}

func (s *scanner) keyword() (any, error) {
	start := s.pos
	for s.pos < len(s.src) && isIdent(s.src[s.pos]) {
		s.pos++
	}
	switch s.src[start:s.pos] {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	s.pos = start
	return nil, s.errf("unexpected token")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdent(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

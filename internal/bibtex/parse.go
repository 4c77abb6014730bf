// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads and writes the BibTeX record format. It is a thin
// transcoding layer: parsing preserves original field-name casing and
// reports which fields were present, and writing emits the canonical
// field set in fixed order.
package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bibflow/pkg/types"
)

// Parse reads BibTeX entries from r. Malformed entries are skipped with a
// diagnostic and parsing resumes at the next "@"; only a failed read of r
// itself is an error.
func Parse(r io.Reader) ([]types.RawRecord, []types.Diagnostic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	return parse(string(data))
}

// ParseFile reads BibTeX entries from the file at path.
func ParseFile(path string) ([]types.RawRecord, []types.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func parse(src string) ([]types.RawRecord, []types.Diagnostic, error) {
	var records []types.RawRecord
	var diags []types.Diagnostic

	s := &scanner{src: src}
	for {
		if !s.seek('@') {
			return records, diags, nil
		}
		start := s.pos
		s.pos++ // consume '@'

		rec, err := s.entry()
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Reason: types.DiagParseError,
				Detail: err.Error(),
			})
			// Resume at the first entry marker after the failed one; the
			// failed entry may have consumed past later entries.
			s.pos = start + 1
			s.seek('@')
			continue
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
}

type scanner struct {
	src string
	pos int
}

// seek advances to the next occurrence of c. Reports false at end of input.
func (s *scanner) seek(c byte) bool {
	idx := strings.IndexByte(s.src[s.pos:], c)
	if idx < 0 {
		s.pos = len(s.src)
		return false
	}
	s.pos += idx
	return true
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

// entry parses one "@type{key, field = value, ...}" block. The '@' has
// already been consumed. Returns nil for directive blocks (@comment,
// @string, @preamble), which carry no record.
func (s *scanner) entry() (*types.RawRecord, error) {
	entryType := s.ident()
	if entryType == "" {
		return nil, fmt.Errorf("expected entry type after '@' at offset %d", s.pos)
	}

	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '{' {
		return nil, fmt.Errorf("expected '{' after @%s", entryType)
	}
	s.pos++

	switch strings.ToLower(entryType) {
	case "comment", "string", "preamble":
		if err := s.skipBalanced(); err != nil {
			return nil, fmt.Errorf("unterminated @%s block", entryType)
		}
		return nil, nil
	}

	s.skipSpace()
	key := s.until(",}")
	key = strings.TrimSpace(key)
	if s.pos < len(s.src) && s.src[s.pos] == ',' {
		s.pos++
	}

	fields := make(map[string]string)
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return nil, fmt.Errorf("unterminated entry %q", key)
		}
		if s.src[s.pos] == '}' {
			s.pos++
			break
		}
		if s.src[s.pos] == ',' {
			s.pos++
			continue
		}

		name := s.ident()
		if name == "" {
			return nil, fmt.Errorf("expected field name in entry %q at offset %d", key, s.pos)
		}
		s.skipSpace()
		if s.pos >= len(s.src) || s.src[s.pos] != '=' {
			return nil, fmt.Errorf("expected '=' after field %q in entry %q", name, key)
		}
		s.pos++

		value, err := s.value()
		if err != nil {
			return nil, fmt.Errorf("entry %q, field %q: %w", key, name, err)
		}
		// Field names keep their original casing; lowering happens at
		// standardization, not here.
		fields[name] = value
	}

	return &types.RawRecord{ID: key, EntryType: entryType, Fields: fields}, nil
}

// ident reads a run of field-name characters (letters, digits, '-', '_').
func (s *scanner) ident() string {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			s.pos++
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

// until reads up to (not including) the first byte in stop.
func (s *scanner) until(stop string) string {
	start := s.pos
	for s.pos < len(s.src) && !strings.ContainsRune(stop, rune(s.src[s.pos])) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// value reads a field value: a brace-balanced block, a quoted string, or
// a bare token running to the next ',' or '}'.
func (s *scanner) value() (string, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return "", fmt.Errorf("missing value")
	}

	switch s.src[s.pos] {
	case '{':
		s.pos++
		start := s.pos
		depth := 1
		for s.pos < len(s.src) {
			switch s.src[s.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					v := s.src[start:s.pos]
					s.pos++
					return v, nil
				}
			}
			s.pos++
		}
		return "", fmt.Errorf("unterminated braced value")

	case '"':
		s.pos++
		start := s.pos
		if !s.seek('"') {
			return "", fmt.Errorf("unterminated quoted value")
		}
		v := s.src[start:s.pos]
		s.pos++
		return v, nil

	default:
		return strings.TrimSpace(s.until(",}")), nil
	}
}

// skipBalanced consumes a brace-balanced block whose opening '{' has
// already been consumed.
func (s *scanner) skipBalanced() error {
	depth := 1
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s.pos++
				return nil
			}
		}
		s.pos++
	}
	return fmt.Errorf("unterminated block")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi extracts canonical DOI identifiers from free-form strings.
package doi

import (
	"regexp"
	"strings"
)

// doiPattern matches a DOI embedded anywhere in a lowercased string:
// "10." followed by 4-9 registrant digits, a slash, and a suffix run.
// It matches both bare identifiers ("10.1234/example.doi") and
// identifiers inside resolver URLs ("https://doi.org/10.1234/example.doi").
// DOIs are case-insensitive per the governing standard; input is
// lowercased before matching, so the class is lowercase-only.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:a-z0-9]+`)

// Normalize extracts the canonical form of a DOI from raw. It trims
// whitespace, lowercases, and returns the first substring matching the
// DOI shape. Empty input yields "".
//
// When no DOI shape is found, the trimmed-lowercased input is returned
// unchanged with matched=false; the caller decides whether to keep the
// fallback or treat the identifier as absent. This leniency keeps a
// single malformed identifier from failing a whole batch.
func Normalize(raw string) (norm string, matched bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", true
	}
	if m := doiPattern.FindString(s); m != "" {
		return m, true
	}
	return s, false
}

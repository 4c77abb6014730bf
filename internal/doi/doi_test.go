// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doi

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		matched bool
	}{
		{"empty", "", "", true},
		{"whitespace only", "   \t", "", true},
		{"bare DOI", "10.1234/example.doi", "10.1234/example.doi", true},
		{"uppercase DOI", "10.1234/EXAMPLE.DOI", "10.1234/example.doi", true},
		{"resolver URL", "https://doi.org/10.1016/j.scij.2024.01.001", "10.1016/j.scij.2024.01.001", true},
		{"resolver URL mixed case", "https://doi.org/10.1234/EXAMPLE.DOI", "10.1234/example.doi", true},
		{"dx resolver", "http://dx.doi.org/10.1109/AECE62803.2024.10911700", "10.1109/aece62803.2024.10911700", true},
		{"doi prefix", "doi:10.3390/f16060891", "10.3390/f16060891", true},
		{"surrounding whitespace", "  10.5555/12345678  ", "10.5555/12345678", true},
		{"nine registrant digits", "10.123456789/abc", "10.123456789/abc", true},
		{"three registrant digits", "10.123/abc", "10.123/abc", false},
		{"punctuation suffix", "10.1145/1234567.1234568;xyz(2)", "10.1145/1234567.1234568;xyz(2)", true},
		{"no DOI at all", "ISBN 978-3-16-148410-0", "isbn 978-3-16-148410-0", false},
		{"fallback lowercases", "Not A DOI", "not a doi", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if matched != tt.matched {
				t.Errorf("Normalize(%q) matched = %v, want %v", tt.input, matched, tt.matched)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"10.1234/example.doi",
		"https://doi.org/10.1234/EXAMPLE.DOI",
		"Not A DOI",
		"  10.3390/f16060891  ",
	}
	for _, in := range inputs {
		once, _ := Normalize(in)
		twice, _ := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes canonical records as tabular data for review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/bibflow/pkg/types"
)

// Header lists the review-sheet columns. "classification" and "Review"
// are placeholders reserved for human annotation and always empty.
var Header = []string{
	"ID", "doi", "classification", "title", "abstract", "keywords",
	"Review", "author", "year", "Publisher", "journal", "type title",
}

// Row renders one record as a review-sheet row. Embedded line breaks are
// collapsed to single spaces: canonical fields may contain raw newlines,
// and the tabular formats must not.
func Row(r types.CanonicalRecord) []string {
	return []string{
		flatten(r.ID),
		flatten(r.DOI),
		"",
		flatten(r.Title),
		flatten(r.Abstract),
		flatten(r.Keywords),
		"",
		flatten(r.Author),
		flatten(r.Year),
		flatten(r.Publisher),
		flatten(r.Journal),
		strings.ToLower(flatten(r.EntryType)),
	}
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func flatten(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

// WriteCSV writes the header and one row per record to w.
func WriteCSV(w io.Writer, records []types.CanonicalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

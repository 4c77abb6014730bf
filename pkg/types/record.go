// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across bibflow stages.
package types

import "strings"

// RawRecord is a bibliographic entry as produced by the BibTeX parser,
// before standardization. Field names keep their original casing; absent
// fields are simply missing from the map (absence is distinct from an
// empty value until standardization).
type RawRecord struct {
	// ID is the citation key (e.g. "f16060891"). Kept verbatim.
	ID string

	// EntryType is the BibTeX entry type (e.g. "article", "INPROCEEDINGS").
	// Kept verbatim.
	EntryType string

	// Fields maps field names, in their original casing, to values.
	Fields map[string]string
}

// Field returns the value for name under case-insensitive lookup, or ""
// when the field is absent.
func (r RawRecord) Field(name string) string {
	if v, ok := r.Fields[name]; ok {
		return v
	}
	for k, v := range r.Fields {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// CanonicalRecord is a bibliographic entry reduced to the fixed canonical
// field set. It is immutable once produced by standardization; later
// stages only filter sequences of records, never mutate entries.
type CanonicalRecord struct {
	// ID is the citation key, preserved verbatim from the raw record.
	ID string `json:"id" yaml:"id"`

	// EntryType is the entry type, preserved verbatim.
	EntryType string `json:"entry_type" yaml:"entry_type"`

	// DOI is the normalized identifier (lowercase, extracted from any
	// surrounding resolver URL). Empty when the source had no DOI.
	DOI string `json:"doi" yaml:"doi"`

	Title     string `json:"title" yaml:"title"`
	Abstract  string `json:"abstract" yaml:"abstract"`
	Keywords  string `json:"keywords" yaml:"keywords"`
	Author    string `json:"author" yaml:"author"`
	Year      string `json:"year" yaml:"year"`
	Publisher string `json:"publisher" yaml:"publisher"`

	// Journal holds the journal name, falling back to the booktitle when
	// the source record had a booktitle but no journal.
	Journal string `json:"journal" yaml:"journal"`

	Pages  string `json:"pages" yaml:"pages"`
	Volume string `json:"volume" yaml:"volume"`
	Number string `json:"number" yaml:"number"`
}

// CanonicalFields lists the canonical field names in output order. The
// BibTeX writer and the tabular exporters follow this order.
var CanonicalFields = []string{
	"doi", "title", "abstract", "keywords", "author", "year",
	"publisher", "journal", "pages", "volume", "number",
}

// FieldValue returns the canonical field value by lowercase field name.
func (r CanonicalRecord) FieldValue(name string) string {
	switch name {
	case "doi":
		return r.DOI
	case "title":
		return r.Title
	case "abstract":
		return r.Abstract
	case "keywords":
		return r.Keywords
	case "author":
		return r.Author
	case "year":
		return r.Year
	case "publisher":
		return r.Publisher
	case "journal":
		return r.Journal
	case "pages":
		return r.Pages
	case "volume":
		return r.Volume
	case "number":
		return r.Number
	default:
		return ""
	}
}

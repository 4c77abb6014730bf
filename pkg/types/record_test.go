package types

import "testing"

func TestRawRecordField(t *testing.T) {
	r := RawRecord{
		ID:        "k",
		EntryType: "article",
		Fields:    map[string]string{"DOI": "10.1/x", "title": "T"},
	}

	if got := r.Field("DOI"); got != "10.1/x" {
		t.Errorf("Field(DOI) = %q", got)
	}
	if got := r.Field("doi"); got != "10.1/x" {
		t.Errorf("Field(doi) = %q, want case-insensitive lookup", got)
	}
	if got := r.Field("Title"); got != "T" {
		t.Errorf("Field(Title) = %q", got)
	}
	if got := r.Field("absent"); got != "" {
		t.Errorf("Field(absent) = %q, want empty default", got)
	}
}

func TestCanonicalFieldValueCoversAllFields(t *testing.T) {
	r := CanonicalRecord{
		DOI: "10.1/x", Title: "t", Abstract: "ab", Keywords: "kw",
		Author: "au", Year: "2024", Publisher: "pub", Journal: "j",
		Pages: "1-2", Volume: "3", Number: "4",
	}
	for _, name := range CanonicalFields {
		if r.FieldValue(name) == "" {
			t.Errorf("FieldValue(%q) is empty, canonical field not mapped", name)
		}
	}
	if r.FieldValue("booktitle") != "" {
		t.Error("booktitle is not a canonical field")
	}
}

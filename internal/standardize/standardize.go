// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package standardize maps raw bibliographic records to the fixed
// canonical field set.
package standardize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/bibflow/internal/doi"
	"github.com/pdiddy/bibflow/pkg/types"
)

// Standardize converts raw records to canonical records in input order.
// Records missing a citation key or entry type are skipped, as are later
// occurrences of a key already standardized in this call. Each skip or
// degradation is reported as a diagnostic; no single record aborts the
// batch.
func Standardize(records []types.RawRecord, cfg types.StandardizeConfig) ([]types.CanonicalRecord, []types.Diagnostic) {
	out := make([]types.CanonicalRecord, 0, len(records))
	var diags []types.Diagnostic
	seen := make(map[string]bool, len(records))

	for _, raw := range records {
		if raw.ID == "" || raw.EntryType == "" {
			diags = append(diags, types.Diagnostic{
				Reason:   types.DiagMissingRequiredField,
				RecordID: raw.ID,
				Detail:   "entry has no citation key or entry type",
			})
			continue
		}
		if seen[raw.ID] {
			diags = append(diags, types.Diagnostic{
				Reason:   types.DiagDuplicateIdentifier,
				RecordID: raw.ID,
				Detail:   "duplicate citation key in input, keeping first occurrence",
			})
			continue
		}
		seen[raw.ID] = true

		rec, d := standardizeOne(raw, cfg)
		if d != nil {
			diags = append(diags, *d)
		}
		out = append(out, rec)
	}

	return out, diags
}

// standardizeOne maps a single raw record to canonical form. The returned
// diagnostic, if any, reports a degradation (malformed DOI); the record is
// still produced.
func standardizeOne(raw types.RawRecord, cfg types.StandardizeConfig) (types.CanonicalRecord, *types.Diagnostic) {
	// Lowercase all field names. Citation key and entry type stay verbatim.
	fields := make(map[string]string, len(raw.Fields))
	for k, v := range raw.Fields {
		fields[strings.ToLower(k)] = v
	}

	var diag *types.Diagnostic
	normalized, matched := doi.Normalize(fields["doi"])
	if !matched {
		diag = &types.Diagnostic{
			Reason:   types.DiagMalformedIdentifier,
			RecordID: raw.ID,
			Detail:   fmt.Sprintf("doi %q did not match the expected shape", fields["doi"]),
		}
		if cfg.StrictIdentifiers {
			normalized = ""
		}
	}

	rec := types.CanonicalRecord{
		ID:        raw.ID,
		EntryType: raw.EntryType,
		DOI:       normalized,
		Title:     fields["title"],
		Abstract:  fields["abstract"],
		Keywords:  fields["keywords"],
		Author:    fields["author"],
		Year:      fields["year"],
		Publisher: fields["publisher"],
		Journal:   fields["journal"],
		Pages:     fields["pages"],
		Volume:    fields["volume"],
		Number:    fields["number"],
	}

	// Conference entries carry a booktitle instead of a journal. The
	// fallback is one-way and applied only here.
	if rec.Journal == "" {
		rec.Journal = fields["booktitle"]
	}

	return rec, diag
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes records from one canonical set whose normalized
// DOI appears in another.
package dedup

import (
	"fmt"

	"github.com/pdiddy/bibflow/pkg/types"
)

// IdentifierSet collects the non-empty DOIs of records into a membership
// set. Records with an empty DOI never count as duplicates of anything.
func IdentifierSet(records []types.CanonicalRecord) map[string]bool {
	dois := make(map[string]bool, len(records))
	for _, r := range records {
		if r.DOI != "" {
			dois[r.DOI] = true
		}
	}
	return dois
}

// Deduplicate returns the subset of x whose DOI does not appear in y,
// preserving input order. The operation is asymmetric: deduplicating x
// against y says nothing about y against x. Chaining across more than two
// sets is the caller's job, either by unioning identifier sets (see
// IdentifierSet and Filter) or by applying the operation sequentially.
func Deduplicate(x, y []types.CanonicalRecord) ([]types.CanonicalRecord, []types.Diagnostic) {
	return Filter(x, IdentifierSet(y))
}

// Filter returns the records of x whose DOI is empty or absent from dois,
// in input order. x may not have passed through standardization in this
// process, so later occurrences of a citation key within x are dropped
// here as well (first wins).
func Filter(x []types.CanonicalRecord, dois map[string]bool) ([]types.CanonicalRecord, []types.Diagnostic) {
	kept := make([]types.CanonicalRecord, 0, len(x))
	var diags []types.Diagnostic
	seen := make(map[string]bool, len(x))

	for _, r := range x {
		if seen[r.ID] {
			diags = append(diags, types.Diagnostic{
				Reason:   types.DiagDuplicateIdentifier,
				RecordID: r.ID,
				Detail:   "duplicate citation key while filtering, keeping first occurrence",
			})
			continue
		}
		seen[r.ID] = true

		if r.DOI != "" && dois[r.DOI] {
			diags = append(diags, types.Diagnostic{
				Reason:   types.DiagDuplicateRemoved,
				RecordID: r.ID,
				Detail:   fmt.Sprintf("doi %s exists in the reference set", r.DOI),
			})
			continue
		}
		kept = append(kept, r)
	}

	return kept, diags
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DiagReason classifies a non-fatal notice about a skipped or degraded
// input record.
type DiagReason string

const (
	// DiagMissingRequiredField marks a record skipped because its citation
	// key or entry type was absent.
	DiagMissingRequiredField DiagReason = "missing_required_field"

	// DiagDuplicateIdentifier marks a later occurrence of a citation key
	// already seen in the same batch. The first occurrence wins.
	DiagDuplicateIdentifier DiagReason = "duplicate_identifier"

	// DiagMalformedIdentifier marks a DOI field that did not match the
	// expected shape and fell back to the lowercased original.
	DiagMalformedIdentifier DiagReason = "malformed_identifier"

	// DiagDuplicateRemoved marks a record dropped during cross-set
	// deduplication because its DOI appears in the reference set.
	DiagDuplicateRemoved DiagReason = "duplicate_removed"

	// DiagParseError marks a source entry the parser could not read.
	DiagParseError DiagReason = "parse_error"
)

// Diagnostic is a structured notice emitted alongside stage results.
// Stages return diagnostics rather than logging; callers decide how to
// surface them.
type Diagnostic struct {
	Reason   DiagReason `json:"reason" yaml:"reason"`
	RecordID string     `json:"record_id,omitempty" yaml:"record_id,omitempty"`
	Detail   string     `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.RecordID == "" {
		return fmt.Sprintf("%s: %s", d.Reason, d.Detail)
	}
	if d.Detail == "" {
		return fmt.Sprintf("%s: record %q", d.Reason, d.RecordID)
	}
	return fmt.Sprintf("%s: record %q: %s", d.Reason, d.RecordID, d.Detail)
}

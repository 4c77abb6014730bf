// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bibflow/pkg/types"
)

// Write serializes canonical records as BibTeX. Every record carries the
// full canonical field set in fixed order, empty fields included, so the
// output shape is uniform across sources.
func Write(w io.Writer, records []types.CanonicalRecord) error {
	for i, r := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, Format(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile serializes canonical records to the file at path.
func WriteFile(path string, records []types.CanonicalRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Format renders one record as a BibTeX entry with two-space indentation.
func Format(r types.CanonicalRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", r.EntryType, r.ID)
	for _, name := range types.CanonicalFields {
		fmt.Fprintf(&b, "  %s = {%s},\n", name, r.FieldValue(name))
	}
	b.WriteString("}\n")
	return b.String()
}

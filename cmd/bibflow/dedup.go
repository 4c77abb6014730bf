// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibflow/internal/bibtex"
	"github.com/pdiddy/bibflow/internal/catalog"
	"github.com/pdiddy/bibflow/internal/dedup"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [input.bib]",
	Short: "Remove records whose DOI appears in reference sets",
	Long: `Dedup reads a standardized BibTeX file and drops every record whose
normalized DOI appears in one or more reference sets: other .bib files
(--against, repeatable) or previously indexed catalog sources
(--against-source). Multiple reference sets are unioned. Records with no
DOI are always kept, and kept records preserve their input order.

The comparison is one-directional: the reference sets are never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runDedup,
}

func runDedup(cmd *cobra.Command, args []string) error {
	against, _ := cmd.Flags().GetStringArray("against")
	againstSources, _ := cmd.Flags().GetStringArray("against-source")
	if len(against) == 0 && len(againstSources) == 0 {
		return fmt.Errorf("no reference set: provide --against or --against-source")
	}

	records, diags, err := parseAndStandardize(cmd, args[0])
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	// Union the DOI sets of all reference inputs.
	dois := make(map[string]bool)
	for _, path := range against {
		refs, refDiags, err := parseAndStandardize(cmd, path)
		if err != nil {
			return err
		}
		printDiagnostics(refDiags)
		for d := range dedup.IdentifierSet(refs) {
			dois[d] = true
		}
	}

	if len(againstSources) > 0 {
		store, err := catalog.NewStore(catalogConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()
		for _, source := range againstSources {
			set, err := store.DOISet(context.Background(), source)
			if err != nil {
				return err
			}
			for d := range set {
				dois[d] = true
			}
		}
	}

	kept, dedupDiags := dedup.Filter(records, dois)
	printDiagnostics(dedupDiags)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if err := bibtex.Write(os.Stdout, kept); err != nil {
			return err
		}
	} else if err := bibtex.WriteFile(output, kept); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "kept %d of %d record(s) (%d removed)\n",
		len(kept), len(records), len(records)-len(kept))
	return nil
}

func init() {
	dedupCmd.Flags().StringP("output", "o", "", "output .bib file (default: stdout)")
	dedupCmd.Flags().StringArray("against", nil, "reference .bib file (repeatable; DOI sets are unioned)")
	dedupCmd.Flags().StringArray("against-source", nil, "reference catalog source label (repeatable)")
	dedupCmd.Flags().String("catalog-dir", "", "base directory for the catalog (with --against-source)")
	dedupCmd.Flags().Bool("strict-doi", false, "treat malformed DOI values as absent instead of keeping the lowercased original")

	rootCmd.AddCommand(dedupCmd)
}

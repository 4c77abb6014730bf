// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibflow/internal/bibtex"
	"github.com/pdiddy/bibflow/internal/standardize"
	"github.com/pdiddy/bibflow/pkg/types"
)

var standardizeCmd = &cobra.Command{
	Use:   "standardize [input.bib]",
	Short: "Map raw BibTeX entries to the canonical field set",
	Long: `Standardize reads a BibTeX file, lowercases field names, normalizes DOI
values (extracting the identifier from resolver URLs), applies the
journal/booktitle fallback, and writes entries with the fixed canonical
field set. Entries missing a citation key or entry type are skipped with
a warning, as are duplicate keys (first occurrence wins).`,
	Args: cobra.ExactArgs(1),
	RunE: runStandardize,
}

func runStandardize(cmd *cobra.Command, args []string) error {
	records, diags, err := parseAndStandardize(cmd, args[0])
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		if err := bibtex.Write(os.Stdout, records); err != nil {
			return err
		}
	} else if err := bibtex.WriteFile(output, records); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "standardized %d record(s), %d warning(s)\n", len(records), len(diags))
	return nil
}

// parseAndStandardize runs the parse and standardize stages over one
// file and returns the canonical records with combined diagnostics.
func parseAndStandardize(cmd *cobra.Command, path string) ([]types.CanonicalRecord, []types.Diagnostic, error) {
	raw, diags, err := bibtex.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := types.StandardizeConfig{
		StrictIdentifiers: viper.GetBool("standardize.strict_identifiers"),
	}
	if cmd.Flags().Changed("strict-doi") {
		cfg.StrictIdentifiers, _ = cmd.Flags().GetBool("strict-doi")
	}

	records, stdDiags := standardize.Standardize(raw, cfg)
	return records, append(diags, stdDiags...), nil
}

func init() {
	standardizeCmd.Flags().StringP("output", "o", "", "output .bib file (default: stdout)")
	standardizeCmd.Flags().Bool("strict-doi", false, "treat malformed DOI values as absent instead of keeping the lowercased original")

	rootCmd.AddCommand(standardizeCmd)
}

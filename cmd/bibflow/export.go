// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibflow/internal/export"
	"github.com/pdiddy/bibflow/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [input.bib]",
	Short: "Write a CSV or XLSX review sheet from a BibTeX file",
	Long: `Export reads a BibTeX file, standardizes it, and writes one row per
record with the review-sheet columns (identifier, DOI, bibliographic
fields, plus empty classification and Review columns reserved for human
annotation). Embedded line breaks are collapsed to single spaces.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := types.ExportConfig{Format: types.ExportFormat(viper.GetString("export.format"))}
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		cfg.Format = types.ExportFormat(f)
	}

	records, diags, err := parseAndStandardize(cmd, args[0])
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	output, _ := cmd.Flags().GetString("output")

	switch cfg.Format {
	case types.ExportCSV:
		if output == "" {
			if err := export.WriteCSV(os.Stdout, records); err != nil {
				return err
			}
		} else {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.WriteCSV(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	case types.ExportXLSX:
		if output == "" {
			return fmt.Errorf("xlsx export requires --output")
		}
		if err := export.WriteXLSX(output, records); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use csv or xlsx", cfg.Format)
	}

	fmt.Fprintf(os.Stderr, "exported %d record(s)\n", len(records))
	return nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout, csv only)")
	exportCmd.Flags().String("format", "", "export format: csv or xlsx")
	exportCmd.Flags().Bool("strict-doi", false, "treat malformed DOI values as absent instead of keeping the lowercased original")

	rootCmd.AddCommand(exportCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibflow/internal/catalog"
	"github.com/pdiddy/bibflow/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the SQLite record catalog (index, lookup, export)",
	Long: `Catalog maintains a local SQLite index of standardized records, keyed
by source label and citation key. Use subcommands to ingest .bib files,
look records up by DOI, or export the catalog.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index [files...]",
	Short: "Ingest standardized .bib files into the catalog",
	Long: `Index standardizes each input file and upserts its records under a
source label. With one input, --source sets the label; otherwise each
file's base name (without extension) is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	if source != "" && len(args) > 1 {
		return fmt.Errorf("--source applies to a single input file")
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		label := source
		if label == "" {
			base := filepath.Base(path)
			label = strings.TrimSuffix(base, filepath.Ext(base))
		}

		records, diags, err := parseAndStandardize(cmd, path)
		if err != nil {
			return err
		}
		printDiagnostics(diags)

		summary, err := store.Index(context.Background(), label, records)
		if err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
		fmt.Printf("%s: %d inserted, %d updated\n", label, summary.Inserted, summary.Updated)
	}
	return nil
}

// --- lookup subcommand ---

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up catalog records by DOI or source",
	RunE:  runCatalogLookup,
}

func runCatalogLookup(cmd *cobra.Command, args []string) error {
	doi, _ := cmd.Flags().GetString("doi")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := catalog.QueryOptions{DOI: doi, Source: source, MaxResults: limit}
	if opts.IsEmpty() {
		return fmt.Errorf("filter required: provide --doi or --source")
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Lookup(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLookupOutput(results, jsonOutput)
}

func formatLookupOutput(results []catalog.StoredRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-34s  %-50s  %-4s\n",
		"Source", "Key", "DOI", "Title", "Year")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 126))

	for _, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		doi := r.DOI
		if len(doi) > 34 {
			doi = doi[:31] + "..."
		}
		key := r.ID
		if len(key) > 20 {
			key = key[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-34s  %-50s  %-4s\n",
			r.Source, key, doi, title, r.Year)
	}

	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to
[catalog-dir]/index/export.yaml or export.json.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	doi, _ := cmd.Flags().GetString("doi")
	source, _ := cmd.Flags().GetString("source")

	cfg := catalogConfig(cmd)
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := catalog.QueryOptions{DOI: doi, Source: source}

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.CatalogDir, "index", "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.CatalogDir, "index", "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

// catalogConfig builds the catalog configuration from the command's
// --catalog-dir flag, falling back to viper settings.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = viper.GetString("catalog.catalog_dir")
	}
	return types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "base directory for the catalog (contains index/)")

	catalogIndexCmd.Flags().String("source", "", "source label for the input file (default: file base name)")
	catalogIndexCmd.Flags().Bool("strict-doi", false, "treat malformed DOI values as absent instead of keeping the lowercased original")

	catalogLookupCmd.Flags().String("doi", "", "filter by normalized DOI")
	catalogLookupCmd.Flags().String("source", "", "filter by source label")
	catalogLookupCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogLookupCmd.Flags().Bool("json", false, "output results as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("doi", "", "filter by normalized DOI for partial export")
	catalogExportCmd.Flags().String("source", "", "filter by source label for partial export")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}

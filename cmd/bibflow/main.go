// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibflow CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibflow/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibflow CLI.
var rootCmd = &cobra.Command{
	Use:   "bibflow",
	Short: "Normalize, deduplicate, and export bibliographic records",
	Long: `bibflow processes BibTeX exports from citation databases (IEEE Xplore,
ScienceDirect, MDPI, ...) for systematic review workflows.

standardize maps raw entries to a fixed canonical field set with normalized
DOIs; dedup removes records whose DOI appears in reference sets; export
produces a CSV or XLSX review sheet; catalog maintains a SQLite index of
standardized records across sources.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibflow.yaml or ~/.config/bibflow/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibflow")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibflow"))
		}
	}

	viper.SetEnvPrefix("BIBFLOW")
	viper.AutomaticEnv()

	viper.SetDefault("standardize.strict_identifiers", false)
	viper.SetDefault("export.format", string(types.ExportCSV))
	viper.SetDefault("catalog.catalog_dir", "catalog")
	viper.SetDefault("catalog.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// printDiagnostics writes each diagnostic as a warning line to stderr.
func printDiagnostics(diags []types.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

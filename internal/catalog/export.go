// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the catalog (or a filtered subset) to
// catalogDir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog (or a filtered subset) to
// catalogDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.catalogDir, indexDir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRecords(ctx context.Context, opts QueryOptions) ([]StoredRecord, error) {
	opts.MaxResults = exportLimit
	records, err := s.Lookup(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return records, nil
}

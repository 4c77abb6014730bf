package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibflow/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := types.CatalogConfig{
		CatalogDir: filepath.Join(tmpDir, "catalog"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func sampleRecords() []types.CanonicalRecord {
	return []types.CanonicalRecord{
		{
			ID: "example_article", EntryType: "article",
			DOI: "10.1234/example.doi", Title: "Another Example Title",
			Author: "Doe, John and Smith, Jane", Year: "2023",
			Journal: "Journal of Examples",
		},
		{
			ID: "f16060891", EntryType: "article",
			DOI: "10.3390/f16060891", Title: "Study on Forest Growing Stock Volume",
			Year: "2025", Journal: "Forests",
		},
		{
			ID: "nodoi", EntryType: "inproceedings",
			Journal: "Proceedings of Nothing",
		},
	}
}

func TestIndexAndLookup(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	summary, err := store.Index(ctx, "ieee", sampleRecords())
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if summary.Inserted != 3 || summary.Updated != 0 {
		t.Errorf("summary = %+v, want 3 inserted", summary)
	}

	results, err := store.Lookup(ctx, QueryOptions{DOI: "10.3390/f16060891"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].ID != "f16060891" || results[0].Source != "ieee" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestIndexUpsert(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if _, err := store.Index(ctx, "ieee", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	changed := sampleRecords()
	changed[0].Title = "Revised Title"
	summary, err := store.Index(ctx, "ieee", changed)
	if err != nil {
		t.Fatalf("re-Index: %v", err)
	}
	if summary.Updated != 3 || summary.Inserted != 0 {
		t.Errorf("summary = %+v, want 3 updated", summary)
	}

	results, err := store.Lookup(ctx, QueryOptions{DOI: "10.1234/example.doi"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Revised Title" {
		t.Errorf("results = %+v, want revised title", results)
	}
}

func TestIndexRequiresSource(t *testing.T) {
	store, _ := testStore(t)
	if _, err := store.Index(context.Background(), "", sampleRecords()); err == nil {
		t.Error("Index with empty source should fail")
	}
}

func TestSameKeyAcrossSources(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	rec := []types.CanonicalRecord{{ID: "shared", EntryType: "article", DOI: "10.1/a"}}
	if _, err := store.Index(ctx, "ieee", rec); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Index(ctx, "mdpi", rec); err != nil {
		t.Fatal(err)
	}

	results, err := store.Lookup(ctx, QueryOptions{DOI: "10.1/a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want one per source", len(results))
	}
}

func TestDOISet(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if _, err := store.Index(ctx, "ieee", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Index(ctx, "mdpi", []types.CanonicalRecord{
		{ID: "other", EntryType: "article", DOI: "10.9/other"},
	}); err != nil {
		t.Fatal(err)
	}

	dois, err := store.DOISet(ctx, "ieee")
	if err != nil {
		t.Fatalf("DOISet: %v", err)
	}
	if len(dois) != 2 {
		t.Errorf("len(dois) = %d, want 2 (empty DOI excluded)", len(dois))
	}
	if !dois["10.1234/example.doi"] || !dois["10.3390/f16060891"] {
		t.Errorf("dois = %v", dois)
	}

	all, err := store.DOISet(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want DOIs across all sources", len(all))
	}
}

func TestExportYAMLAndJSON(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()

	if _, err := store.Index(ctx, "ieee", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	if err := store.ExportYAML(ctx, QueryOptions{}); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tmpDir, "catalog", indexDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []StoredRecord
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("invalid YAML export: %v", err)
	}
	if len(fromYAML) != 3 {
		t.Errorf("YAML export has %d records, want 3", len(fromYAML))
	}

	if err := store.ExportJSON(ctx, QueryOptions{Source: "ieee"}); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(tmpDir, "catalog", indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []StoredRecord
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("invalid JSON export: %v", err)
	}
	if len(fromJSON) != 3 {
		t.Errorf("JSON export has %d records, want 3", len(fromJSON))
	}
}

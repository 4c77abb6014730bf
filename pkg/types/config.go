package types

// StandardizeConfig holds settings for the standardization stage.
type StandardizeConfig struct {
	// StrictIdentifiers controls the malformed-DOI policy. When false
	// (the default) a DOI field that does not match the expected shape
	// standardizes to its lowercased, trimmed original. When true it
	// standardizes to empty, so strict pipelines treat it as absent.
	StrictIdentifiers bool `json:"strict_identifiers" yaml:"strict_identifiers"`
}

// ExportFormat selects the tabular export format.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportConfig holds settings for the tabular export stage.
type ExportConfig struct {
	// Format selects the output format: csv or xlsx.
	Format ExportFormat `json:"format" yaml:"format"`
}

// CatalogConfig holds settings for the SQLite record catalog.
type CatalogConfig struct {
	// CatalogDir is the base directory for the catalog (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of lookup results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Standardize StandardizeConfig `json:"standardize" yaml:"standardize"`
	Export      ExportConfig      `json:"export" yaml:"export"`
	Catalog     CatalogConfig     `json:"catalog" yaml:"catalog"`
}

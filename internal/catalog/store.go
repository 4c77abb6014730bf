// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists standardized records in a SQLite database so
// review rounds can look up records by DOI and deduplicate new exports
// against previously indexed sources.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bibflow/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at
// catalogDir/index/catalog.db, creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			source TEXT NOT NULL,
			id TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			doi TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			abstract TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			journal TEXT NOT NULL DEFAULT '',
			pages TEXT NOT NULL DEFAULT '',
			volume TEXT NOT NULL DEFAULT '',
			number TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (source, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from a catalog indexing run.
type IndexSummary struct {
	Inserted int
	Updated  int
}

// Total returns the number of records processed.
func (s IndexSummary) Total() int {
	return s.Inserted + s.Updated
}

// Index upserts records into the catalog under the given source label.
// Re-indexing the same (source, id) pair replaces the stored fields.
func (s *Store) Index(ctx context.Context, source string, records []types.CanonicalRecord) (IndexSummary, error) {
	if source == "" {
		return IndexSummary{}, fmt.Errorf("source label required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (source, id, entry_type, doi, title, abstract, keywords,
			author, year, publisher, journal, pages, volume, number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source, id) DO UPDATE SET
			entry_type=excluded.entry_type, doi=excluded.doi, title=excluded.title,
			abstract=excluded.abstract, keywords=excluded.keywords, author=excluded.author,
			year=excluded.year, publisher=excluded.publisher, journal=excluded.journal,
			pages=excluded.pages, volume=excluded.volume, number=excluded.number`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	var summary IndexSummary
	for _, r := range records {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM records WHERE source = ? AND id = ?`, source, r.ID,
		).Scan(&exists)
		if err != nil {
			return summary, fmt.Errorf("checking record %s: %w", r.ID, err)
		}

		_, err = stmt.ExecContext(ctx,
			source, r.ID, r.EntryType, r.DOI, r.Title, r.Abstract, r.Keywords,
			r.Author, r.Year, r.Publisher, r.Journal, r.Pages, r.Volume, r.Number,
		)
		if err != nil {
			return summary, fmt.Errorf("upserting record %s: %w", r.ID, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// StoredRecord is a canonical record with its source label.
type StoredRecord struct {
	types.CanonicalRecord `yaml:",inline"`
	Source                string `json:"source" yaml:"source"`
}

// QueryOptions holds filters for catalog lookups.
type QueryOptions struct {
	// DOI filters by exact normalized DOI.
	DOI string

	// Source filters by source label.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.DOI == "" && q.Source == ""
}

// Lookup returns stored records matching the filters, ordered by source
// then citation key.
func (s *Store) Lookup(ctx context.Context, opts QueryOptions) ([]StoredRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT source, id, entry_type, doi, title, abstract, keywords,
			author, year, publisher, journal, pages, volume, number
		FROM records WHERE 1=1`)

	if opts.DOI != "" {
		qb.WriteString(` AND doi = ?`)
		args = append(args, opts.DOI)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	qb.WriteString(` ORDER BY source, id LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []StoredRecord
	for rows.Next() {
		var r StoredRecord
		err := rows.Scan(
			&r.Source, &r.ID, &r.EntryType, &r.DOI, &r.Title, &r.Abstract,
			&r.Keywords, &r.Author, &r.Year, &r.Publisher, &r.Journal,
			&r.Pages, &r.Volume, &r.Number,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DOISet returns the non-empty DOIs stored for a source, for use as a
// deduplication reference set. An empty source collects DOIs across all
// sources.
func (s *Store) DOISet(ctx context.Context, source string) (map[string]bool, error) {
	query := `SELECT DISTINCT doi FROM records WHERE doi != ''`
	var args []any
	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying DOIs: %w", err)
	}
	defer rows.Close()

	dois := make(map[string]bool)
	for rows.Next() {
		var doi string
		if err := rows.Scan(&doi); err != nil {
			return nil, fmt.Errorf("scanning doi: %w", err)
		}
		dois[doi] = true
	}
	return dois, rows.Err()
}

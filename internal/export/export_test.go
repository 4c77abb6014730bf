// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/bibflow/pkg/types"
)

func sampleRecords() []types.CanonicalRecord {
	return []types.CanonicalRecord{
		{
			ID:        "example_article",
			EntryType: "ARTICLE",
			DOI:       "10.1234/example.doi",
			Title:     "Another Example Title",
			Abstract:  "Line one.\nLine two.",
			Keywords:  "example, testing",
			Author:    "Doe, John and Smith, Jane",
			Year:      "2023",
			Publisher: "Acme",
			Journal:   "Journal of Examples",
		},
		{
			ID:        "nodoi",
			EntryType: "inproceedings",
			Journal:   "Proceedings of Nothing",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Header, rows[0])

	r := rows[1]
	assert.Equal(t, "example_article", r[0])
	assert.Equal(t, "10.1234/example.doi", r[1])
	assert.Empty(t, r[2], "classification placeholder must stay empty")
	assert.Equal(t, "Line one. Line two.", r[4], "line breaks collapse to spaces")
	assert.Empty(t, r[6], "Review placeholder must stay empty")
	assert.Equal(t, "article", r[11], "entry type is lowercased")

	assert.Equal(t, "inproceedings", rows[2][11])
	assert.Empty(t, rows[2][1])
}

func TestRowCollapsesAllLineBreakKinds(t *testing.T) {
	r := Row(types.CanonicalRecord{
		ID:    "k",
		Title: "a\r\nb\rc\nd",
	})
	assert.Equal(t, "a b c d", r[3])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.xlsx")
	require.NoError(t, WriteXLSX(path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "example_article", rows[1][0])
	assert.Equal(t, "10.1234/example.doi", rows[1][1])
}

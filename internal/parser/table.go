package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MissingColumnsError is the fatal condition for a report run: a required
// column is absent from an uploaded file.
type MissingColumnsError struct {
	File    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s file is missing required columns: %s", e.File, strings.Join(e.Columns, ", "))
}

// table is one loaded sheet with normalized headers.
type table struct {
	colIndex map[string]int
	rows     [][]string // data rows only, header stripped
}

// loadTable reads the first sheet of an xlsx upload and normalizes its header
// row (trim + lowercase). Required columns are validated up front; anything
// else about the content is coerced leniently later.
func loadTable(reader io.Reader, fileLabel string, required []string) (*table, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", fileLabel, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s file has no sheets", fileLabel)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", fileLabel, err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{File: fileLabel, Columns: required}
	}

	colIndex := make(map[string]int)
	for i, name := range rows[0] {
		normalized := NormalizeHeader(name)
		if _, exists := colIndex[normalized]; !exists {
			colIndex[normalized] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{File: fileLabel, Columns: missing}
	}

	return &table{
		colIndex: colIndex,
		rows:     rows[1:],
	}, nil
}

// cell returns the value of a named column in a row. excelize drops trailing
// empty cells, so short rows read as empty strings.
func (t *table) cell(row []string, column string) string {
	idx, ok := t.colIndex[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

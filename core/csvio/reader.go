package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const bom = "\ufeff"

// MissingColumnsError reports required columns absent from a header row.
type MissingColumnsError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Columns, ", "))
}

// ErrNoHeader is returned for an empty input.
var ErrNoHeader = errors.New("csv has no header row")

// Row is one data line keyed by header name.
type Row struct {
	// Line is the 1-based line number in the source, header included.
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.fields[column])
}

// Has reports whether the column exists in the header.
func (r Row) Has(column string) bool {
	_, ok := r.fields[column]
	return ok
}

// Table is a parsed file.
type Table struct {
	Header []string
	Rows   []Row
}

// HasColumn reports whether the header contains column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, required []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, path, required)
}

// Read parses a headed CSV stream. source names the input in errors.
func Read(r io.Reader, source string, required []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", source, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], bom))
	}

	t := &Table{Header: header}
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Source: source, Columns: missing}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				fields[col] = record[i]
			} else {
				fields[col] = ""
			}
		}
		t.Rows = append(t.Rows, Row{Line: line, fields: fields})
	}

	return t, nil
}

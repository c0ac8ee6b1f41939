package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for table files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Row is one dataset record.
type Row struct {
	// Index is the zero-based position of the row within its table.
	Index  int
	values map[string]string
}

// NewRow builds a row from column values. The map is copied.
func NewRow(index int, values map[string]string) Row {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Row{Index: index, values: cp}
}

// Get returns the value of column, or "" when the row lacks it.
func (r Row) Get(column string) string {
	return r.values[column]
}

// Has reports whether the row carries column at all.
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// With returns a copy of the row with column set to value. The receiver is
// left untouched.
func (r Row) With(column, value string) Row {
	cp := make(map[string]string, len(r.values)+1)
	for k, v := range r.values {
		cp[k] = v
	}
	cp[column] = value
	return Row{Index: r.Index, values: cp}
}

// Values renders the row in header order; missing columns become "".
func (r Row) Values(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = r.values[h]
	}
	return out
}

// Table is a loaded dataset: its header order and its rows.
type Table struct {
	Path    string
	Headers []string
	Rows    []Row
}

// HasColumn reports whether name appears in the header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns every row's value for name, in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row.Get(name))
	}
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// LoadTable reads a CSV or XLSX file, chosen by extension.
func LoadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// AppendHeaders returns headers followed by every extra column not already present.
func AppendHeaders(headers []string, extra ...string) []string {
	out := make([]string, 0, len(headers)+len(extra))
	out = append(out, headers...)
	for _, column := range extra {
		if !containsString(out, column) {
			out = append(out, column)
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// fromRecords turns a header record plus data records into a Table. Header
// cells are trimmed; a repeated header name keeps the rightmost value.
// Cells beyond the header are dropped, short records leave trailing columns
// unset, and records with no cells at all are skipped.
func fromRecords(path string, records [][]string) *Table {
	table := &Table{Path: path}
	if len(records) == 0 {
		return table
	}
	header := records[0]
	table.Headers = make([]string, 0, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if !containsString(table.Headers, h) {
			table.Headers = append(table.Headers, h)
		}
	}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		values := make(map[string]string, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			values[strings.TrimSpace(header[i])] = cell
		}
		table.Rows = append(table.Rows, Row{Index: len(table.Rows), values: values})
	}
	return table
}

package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"pdfmatch/internal/dataset"
)

// WriteFile creates path with a single placeholder byte, creating parents.
func WriteFile(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte{0x25}, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteDocuments creates one document per name (without extension) in dir.
func WriteDocuments(t testing.TB, dir, ext string, names ...string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name+ext))
	}
}

// WriteDataset writes a CSV dataset with the given header and records.
func WriteDataset(t testing.TB, path string, headers []string, records ...[]string) {
	t.Helper()

	rows := make([]dataset.Row, 0, len(records))
	for i, record := range records {
		values := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(record) {
				values[h] = record[j]
			}
		}
		rows = append(rows, dataset.NewRow(i, values))
	}
	if err := dataset.WriteCSV(path, headers, rows); err != nil {
		t.Fatalf("write dataset %s: %v", path, err)
	}
}

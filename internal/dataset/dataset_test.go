package dataset_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"pdfmatch/internal/dataset"
)

func TestReadCSVStripsBOMAndKeepsHeaderOrder(t *testing.T) {
	input := "\xEF\xBB\xBFTitle,DOI,Year\n" +
		"\"Trust, in Teams\",10.1/a,2020\n" +
		"Short Row\n" +
		"Long,10.1/b,2021,extra\n"

	table, err := dataset.ReadCSV(strings.NewReader(input), "scopus_dss.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(table.Headers, []string{"Title", "DOI", "Year"}) {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	first := table.Rows[0]
	if first.Get("Title") != "Trust, in Teams" || first.Get("DOI") != "10.1/a" {
		t.Fatalf("unexpected first row: %v", first.Values(table.Headers))
	}
	short := table.Rows[1]
	if short.Has("DOI") || short.Get("DOI") != "" {
		t.Fatal("short row should not carry DOI")
	}
	if table.Rows[2].Index != 2 {
		t.Fatalf("expected index 2, got %d", table.Rows[2].Index)
	}
	if !table.HasColumn("Year") || table.HasColumn("Journal") {
		t.Fatal("HasColumn mismatch")
	}
}

func TestReadCSVDuplicateHeaderKeepsRightmost(t *testing.T) {
	table, err := dataset.ReadCSV(strings.NewReader("Title,Title\nleft,right\n"), "dup.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(table.Headers) != 1 {
		t.Fatalf("expected a single Title header, got %v", table.Headers)
	}
	if got := table.Rows[0].Get("Title"); got != "right" {
		t.Fatalf("expected rightmost value, got %q", got)
	}
}

func TestRowWithCopies(t *testing.T) {
	row := dataset.NewRow(4, map[string]string{"Title": "A"})
	annotated := row.With("Matched_PDF_Path", "/tmp/a.pdf")

	if row.Has("Matched_PDF_Path") {
		t.Fatal("With must not mutate the receiver")
	}
	if annotated.Get("Matched_PDF_Path") != "/tmp/a.pdf" || annotated.Get("Title") != "A" {
		t.Fatalf("unexpected annotated row: %v", annotated.Values([]string{"Title", "Matched_PDF_Path"}))
	}
	if annotated.Index != 4 {
		t.Fatalf("index lost: %d", annotated.Index)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	headers := dataset.AppendHeaders([]string{"Title", "DOI"}, "Unmatch_Reason", "Title")
	rows := []dataset.Row{
		dataset.NewRow(0, map[string]string{"Title": "Über \"quoted\"", "DOI": "10.1/x"}).With("Unmatch_Reason", "no matching file"),
		dataset.NewRow(1, map[string]string{"Title": "B"}),
	}

	if err := dataset.WriteCSV(path, headers, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("expected byte order mark")
	}

	table, err := dataset.LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if !reflect.DeepEqual(table.Headers, []string{"Title", "DOI", "Unmatch_Reason"}) {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if table.Rows[0].Get("Title") != "Über \"quoted\"" || table.Rows[0].Get("Unmatch_Reason") != "no matching file" {
		t.Fatalf("unexpected row: %v", table.Rows[0].Values(table.Headers))
	}
	if table.Rows[1].Get("DOI") != "" {
		t.Fatalf("expected empty DOI, got %q", table.Rows[1].Get("DOI"))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopus_misq.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]any{
		{"Title", "DOI"},
		{"Trust in Teams", "10.25300/misq/1"},
		{"Second", ""},
	}
	for i, row := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	table, err := dataset.LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if table.Rows[0].Get("DOI") != "10.25300/misq/1" {
		t.Fatalf("unexpected DOI: %q", table.Rows[0].Get("DOI"))
	}
}

func TestLoadTableRejectsUnknownFormat(t *testing.T) {
	_, err := dataset.LoadTable("records.json")
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTableColumn(t *testing.T) {
	table, err := dataset.ReadCSV(strings.NewReader("Title,DOI\nA,1\nB\n"), "t.csv")
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got := table.Column("DOI"); !reflect.DeepEqual(got, []string{"1", ""}) {
		t.Fatalf("unexpected column: %v", got)
	}
}

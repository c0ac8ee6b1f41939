package aggregate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/matching"
	"pdfmatch/internal/partition"
)

func part(source string, kind matching.Kind, headers []string, rows ...map[string]string) partition.Partition {
	p := partition.Partition{Source: source, Kind: kind, Headers: headers}
	for i, values := range rows {
		p.Rows = append(p.Rows, dataset.NewRow(i, values))
	}
	return p
}

func column(t Table, name string) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row.Get(name))
	}
	return out
}

func TestMergeMatchedTagsAndCollects(t *testing.T) {
	parts := []partition.Partition{
		part("DSS", matching.KindMatched, []string{"Title", "DOI", "Matched_PDF_Path"},
			map[string]string{"Title": "A", "DOI": "10.1/a"},
			map[string]string{"Title": "B", "DOI": ""},
		),
		part("ISJ", matching.KindMatched, []string{"Title", "DOI", "Year", "Matched_PDF_Path"},
			map[string]string{"Title": "C", "DOI": "10.1111/isj.1"},
		),
	}

	table, satisfied := MergeMatched(parts, "DOI")
	if !reflect.DeepEqual(table.Headers, []string{"Journal", "Title", "DOI", "Matched_PDF_Path", "Year"}) {
		t.Fatalf("unexpected headers %v", table.Headers)
	}
	if got := column(table, ColumnJournal); !reflect.DeepEqual(got, []string{"DSS", "DSS", "ISJ"}) {
		t.Fatalf("unexpected journals %v", got)
	}
	if len(satisfied) != 2 || !satisfied.Contains("10.1/a") || !satisfied.Contains("10.1111/isj.1") {
		t.Fatalf("unexpected satisfied set %v", satisfied)
	}
	if parts[0].Rows[0].Has(ColumnJournal) {
		t.Fatal("partition rows must not be modified")
	}
}

func TestMergeUnmatchedDedupIsStable(t *testing.T) {
	headers := []string{"Title", "DOI", "Unmatch_Reason"}
	parts := []partition.Partition{
		part("DSS", matching.KindUnmatched, headers,
			map[string]string{"Title": "first", "DOI": "10.1111/x"},
			map[string]string{"Title": "keep", "DOI": "10.1/k"},
		),
		part("EJIS", matching.KindUnmatched, headers,
			map[string]string{"Title": "second", "DOI": "10.1111/x"},
		),
	}

	table := MergeUnmatched(parts, "DOI", IdentifierSet{}, "https://doi.org")
	if got := column(table, "Title"); !reflect.DeepEqual(got, []string{"first", "keep"}) {
		t.Fatalf("unexpected rows %v", got)
	}
	want := []string{"Title", "DOI", "Unmatch_Reason", ColumnDownloadLink}
	if !reflect.DeepEqual(table.Headers, want) {
		t.Fatalf("unexpected headers %v", table.Headers)
	}
	for _, row := range table.Rows {
		if row.Has(ColumnJournal) {
			t.Fatalf("unmatched rows must not carry a source tag: %v", row.Get(ColumnJournal))
		}
	}
	if got := column(table, ColumnDownloadLink)[0]; got != "https://doi.org/10.1111/x" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestMergeUnmatchedExcludesAcrossSources(t *testing.T) {
	matched := []partition.Partition{
		part("ISJ", matching.KindMatched, []string{"DOI"}, map[string]string{"DOI": "10.1/done"}),
	}
	unmatched := []partition.Partition{
		part("DSS", matching.KindUnmatched, []string{"DOI"},
			map[string]string{"DOI": "10.1/done"},
			map[string]string{"DOI": "10.1/todo"},
			map[string]string{"DOI": ""},
			map[string]string{"DOI": ""},
		),
	}

	result := Merge(matched, unmatched, nil, Options{IdentifierColumn: "DOI", ResolverBase: "https://doi.org"})
	if got := column(result.Unmatched, "DOI"); !reflect.DeepEqual(got, []string{"10.1/todo", ""}) {
		t.Fatalf("unexpected unmatched rows %v", got)
	}
	if got := column(result.Unmatched, ColumnDownloadLink); !reflect.DeepEqual(got, []string{"https://doi.org/10.1/todo", ""}) {
		t.Fatalf("unexpected links %v", got)
	}
	if result.Excluded != 1 || result.Satisfied != 1 {
		t.Fatalf("unexpected counters excluded=%d satisfied=%d", result.Excluded, result.Satisfied)
	}
	if !result.MultiMatched.Empty() {
		t.Fatal("expected empty multi table")
	}
}

func TestMergeMultiMatchedKeepsEveryRow(t *testing.T) {
	headers := []string{"DOI", "Matched_PDF_Paths", "Match_Count"}
	parts := []partition.Partition{
		part("DSS", matching.KindMultiMatched, headers, map[string]string{"DOI": "10.1/m"}),
		part("IM", matching.KindMultiMatched, headers, map[string]string{"DOI": "10.1/m"}),
	}
	table := MergeMultiMatched(parts, "DOI", "https://doi.org")
	if got := column(table, ColumnJournal); !reflect.DeepEqual(got, []string{"DSS", "IM"}) {
		t.Fatalf("unexpected rows %v", got)
	}
	if got := column(table, ColumnDownloadLink); got[1] != "https://doi.org/10.1/m" {
		t.Fatalf("unexpected links %v", got)
	}
}

func TestDownloadLink(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{" 10.1111/isj.1 ", "https://doi.org/10.1111/isj.1"},
		{"https://example.org/paper", "https://example.org/paper"},
		{"http://dx.doi.org/10.1/x", "http://dx.doi.org/10.1/x"},
	}
	for _, tt := range tests {
		if got := DownloadLink(tt.id, "https://doi.org/"); got != tt.want {
			t.Fatalf("DownloadLink(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestMergeDirAndWrite(t *testing.T) {
	root := t.TempDir()
	writer := partition.Writer{Root: root}
	headers := []string{"Title", "DOI"}
	sets := map[string]matching.Result{
		"DSS": {Unmatched: []matching.RowOutcome{{Row: dataset.NewRow(0, map[string]string{"Title": "A", "DOI": "10.1/a"}), Outcome: matching.Unmatched(matching.ReasonNoMatch)}}},
		"ISJ": {Matched: []matching.RowOutcome{{Row: dataset.NewRow(0, map[string]string{"Title": "A", "DOI": "10.1/a"}), Outcome: matching.Matched(fileRecord("a"))}}},
	}
	for source, result := range sets {
		if _, err := writer.Write(partition.Build(source, headers, result)); err != nil {
			t.Fatalf("write %s: %v", source, err)
		}
	}

	result, err := MergeDir(root, Options{IdentifierColumn: "DOI", ResolverBase: "https://doi.org"})
	if err != nil {
		t.Fatalf("MergeDir: %v", err)
	}
	if len(result.Matched.Rows) != 1 || !result.Unmatched.Empty() {
		t.Fatalf("unexpected merge %+v", result)
	}

	written, err := Write(root, result)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(written) != 1 || filepath.Base(written[0]) != FileMatched {
		t.Fatalf("unexpected written %v", written)
	}
	if _, err := os.Stat(filepath.Join(root, FileUnmatched)); !os.IsNotExist(err) {
		t.Fatalf("empty aggregate should not be written, stat err = %v", err)
	}
}

func fileRecord(name string) inventory.FileRecord {
	return inventory.FileRecord{Name: name, Path: "/docs/" + name + ".pdf"}
}

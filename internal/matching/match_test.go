package matching

import (
	"reflect"
	"testing"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/profile"
)

func files(names ...string) []inventory.FileRecord {
	out := make([]inventory.FileRecord, 0, len(names))
	for _, name := range names {
		out = append(out, inventory.FileRecord{Name: name, Path: "/docs/" + name + ".pdf"})
	}
	return out
}

func rows(column string, values ...string) []dataset.Row {
	out := make([]dataset.Row, 0, len(values))
	for i, v := range values {
		out = append(out, dataset.NewRow(i, map[string]string{column: v}))
	}
	return out
}

func names(records []inventory.FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestMatchEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		column  string
		value   string
		profile profile.SourceProfile
	}{
		{"year pattern", "Study_2021_DSS", "Title", "Study of Something 2021", profile.SourceProfile{HasYearPattern: true}},
		{"identifier", "isj.12026", "DOI", "10.1111/isj.12026", profile.SourceProfile{UsesIdentifierMatching: true}},
		{"special encoding", "Title#x3a;Subtitle", "Title", "Title: Subtitle", profile.SourceProfile{UsesSpecialEncoding: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Match(files(tt.file), rows(tt.column, tt.value), tt.column, tt.profile, nil)
			if len(result.Matched) != 1 {
				t.Fatalf("expected one match, got %+v", result)
			}
			file, ok := result.Matched[0].Outcome.File()
			if !ok || file.Name != tt.file {
				t.Fatalf("unexpected matched file %+v", file)
			}
		})
	}
}

func TestMatchIsAsymmetric(t *testing.T) {
	p := profile.SourceProfile{}
	result := Match(files("Study of Trust"), rows("Title", "Study of Trust in Teams"), "Title", p, nil)
	if len(result.Matched) != 1 {
		t.Fatalf("file key should prefix-match longer row: %+v", result)
	}

	result = Match(files("Study of Trust in Teams"), rows("Title", "Study of Trust"), "Title", p, nil)
	if len(result.Unmatched) != 1 || result.Unmatched[0].Outcome.Reason != ReasonNoMatch {
		t.Fatalf("row shorter than key must not match: %+v", result)
	}

	result = Match(files("Trust"), rows("Title", "Study of Trust"), "Title", p, nil)
	if len(result.Unmatched) != 1 {
		t.Fatalf("key in the middle of the row must not match: %+v", result)
	}
}

func TestMatchEmptyFieldAlwaysUnmatched(t *testing.T) {
	p := profile.SourceProfile{}
	rs := []dataset.Row{
		dataset.NewRow(0, map[string]string{"Title": ""}),
		dataset.NewRow(1, map[string]string{"DOI": "10.1/x"}),
	}
	result := Match(files("", "anything", "!!!"), rs, "Title", p, nil)
	if len(result.Unmatched) != 2 {
		t.Fatalf("expected all rows unmatched, got %+v", result)
	}
	for _, ro := range result.Unmatched {
		if ro.Outcome.Reason != ReasonEmptyField {
			t.Fatalf("row %d: expected empty field reason, got %q", ro.Row.Index, ro.Outcome.Reason)
		}
	}
}

func TestMatchWhitespaceValueIsNotEmptyField(t *testing.T) {
	rs := []dataset.Row{
		dataset.NewRow(0, map[string]string{"Title": "   "}),
		dataset.NewRow(1, map[string]string{"Title": "\t"}),
	}
	result := Match(files("anything", "!!!"), rs, "Title", profile.SourceProfile{}, nil)
	if len(result.Unmatched) != 2 {
		t.Fatalf("expected whitespace rows unmatched, got %+v", result)
	}
	for _, ro := range result.Unmatched {
		if ro.Outcome.Reason != ReasonNoMatch {
			t.Fatalf("row %d: expected %q, got %q", ro.Row.Index, ReasonNoMatch, ro.Outcome.Reason)
		}
	}
}

func TestMatchSameKeyIsMultiMatched(t *testing.T) {
	p := profile.SourceProfile{}
	result := Match(files("Study of Trust", "study-of-trust"), rows("Title", "Study of Trust in Teams"), "Title", p, nil)
	if len(result.MultiMatched) != 1 || len(result.Matched) != 0 {
		t.Fatalf("expected multi match, got %+v", result)
	}
	got := names(result.MultiMatched[0].Outcome.Files)
	if !reflect.DeepEqual(got, []string{"Study of Trust", "study-of-trust"}) {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestMatchNestedKeysAreMultiMatchedInDiscoveryOrder(t *testing.T) {
	p := profile.SourceProfile{UsesIdentifierMatching: true}
	result := Match(files("isj2", "isj"), rows("DOI", "isj2 extra"), "DOI", p, nil)
	if len(result.MultiMatched) != 1 {
		t.Fatalf("expected multi match, got %+v", result)
	}
	outcome := result.MultiMatched[0].Outcome
	if got := names(outcome.Files); !reflect.DeepEqual(got, []string{"isj2", "isj"}) {
		t.Fatalf("candidates out of discovery order: %v", got)
	}
	if got := outcome.Paths(); !reflect.DeepEqual(got, []string{"/docs/isj2.pdf", "/docs/isj.pdf"}) {
		t.Fatalf("unexpected paths %v", got)
	}
}

func TestMatchEmptyKeyNeverMatches(t *testing.T) {
	p := profile.SourceProfile{HasYearPattern: true}
	result := Match(files("_2020_x", "2019"), rows("Title", "Anything at all"), "Title", p, nil)
	if len(result.Unmatched) != 1 || result.Unmatched[0].Outcome.Reason != ReasonNoMatch {
		t.Fatalf("empty keys must not match: %+v", result)
	}
}

func TestMatchWithoutFilesLeavesRowsUnmatched(t *testing.T) {
	result := Match(nil, rows("Title", "A", "", "B"), "Title", profile.SourceProfile{}, nil)
	if result.Total() != 3 || len(result.Unmatched) != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	reasons := []string{}
	for _, ro := range result.Unmatched {
		reasons = append(reasons, ro.Outcome.Reason)
	}
	want := []string{ReasonNoMatch, ReasonEmptyField, ReasonNoMatch}
	if !reflect.DeepEqual(reasons, want) {
		t.Fatalf("unexpected reasons %v", reasons)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	p := profile.SourceProfile{}
	fs := files("Alpha", "alpha!", "Alpha Beta", "Gamma")
	rs := rows("Title", "Alpha Beta Gamma", "Gamma ray", "Delta")
	first := Match(fs, rs, "Title", p, nil)
	for i := 0; i < 5; i++ {
		if again := Match(fs, rs, "Title", p, nil); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs", i)
		}
	}
	if len(first.MultiMatched) != 1 || len(first.MultiMatched[0].Outcome.Files) != 3 {
		t.Fatalf("expected three candidates, got %+v", first.MultiMatched)
	}
}

func TestKindString(t *testing.T) {
	if KindMultiMatched.String() != "multi_matched" || KindMatched.String() != "matched" || KindUnmatched.String() != "unmatched" {
		t.Fatal("unexpected kind labels")
	}
}

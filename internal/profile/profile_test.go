package profile

import (
	"reflect"
	"testing"
)

func TestResolveBuiltins(t *testing.T) {
	table := NewTable(nil, Overrides{})

	tests := []struct {
		source string
		want   SourceProfile
	}{
		{"DSS", SourceProfile{HasYearPattern: true}},
		{"isj", SourceProfile{UsesIdentifierMatching: true}},
		{" Isr ", SourceProfile{UsesSpecialEncoding: true}},
		{"MISQ", SourceProfile{}},
		{"UNKNOWN", SourceProfile{HasYearPattern: true}},
	}
	for _, tt := range tests {
		if got := table.Resolve(tt.source); got != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.source, got, tt.want)
		}
	}
}

func TestResolveOverridesOnlySwitchOn(t *testing.T) {
	table := NewTable(nil, Overrides{
		Identifier: []string{"misq", "DSS"},
		Encoding:   []string{"jais"},
	})

	if got := table.Resolve("MISQ"); !got.UsesIdentifierMatching {
		t.Fatalf("expected identifier override for MISQ, got %+v", got)
	}
	dss := table.Resolve("DSS")
	if !dss.HasYearPattern || !dss.UsesIdentifierMatching {
		t.Fatalf("expected DSS to keep year pattern and gain identifier matching, got %+v", dss)
	}
	if got := table.Resolve("JAIS"); !got.UsesSpecialEncoding {
		t.Fatalf("expected encoding override for JAIS, got %+v", got)
	}
	if got := table.Resolve("ISJ"); !got.UsesIdentifierMatching {
		t.Fatalf("ISJ lost identifier matching without an override: %+v", got)
	}
}

func TestCustomProfilesReplaceBuiltins(t *testing.T) {
	table := NewTable(map[string]SourceProfile{
		"dss":  {},
		"cais": {HasYearPattern: true, UsesSpecialEncoding: true},
		"  ":   {UsesIdentifierMatching: true},
	}, Overrides{})

	if got := table.Resolve("DSS"); got != (SourceProfile{}) {
		t.Fatalf("expected custom DSS profile, got %+v", got)
	}
	if !table.Known("Cais") {
		t.Fatal("expected CAIS to be known")
	}
	names := table.Names()
	if len(names) != len(builtins)+1 {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestBuiltinsReturnsCopy(t *testing.T) {
	copied := Builtins()
	copied["DSS"] = SourceProfile{UsesIdentifierMatching: true}
	if !reflect.DeepEqual(builtins["DSS"], SourceProfile{HasYearPattern: true}) {
		t.Fatal("Builtins must not expose the package table")
	}
}

func TestMatchColumnAndDigits(t *testing.T) {
	id := SourceProfile{UsesIdentifierMatching: true}
	if id.MatchColumn("Title", "DOI") != "DOI" || !id.RetainDigits() {
		t.Fatalf("identifier profile should use DOI with digits")
	}
	title := SourceProfile{HasYearPattern: true}
	if title.MatchColumn("Title", "DOI") != "Title" || title.RetainDigits() {
		t.Fatalf("title profile should use Title without digits")
	}
	if got := (SourceProfile{UsesSpecialEncoding: true}).Describe(); got != "title matching, plain name, encoding artifacts" {
		t.Fatalf("unexpected description %q", got)
	}
}

package matching

import (
	"pdfmatch/internal/dataset"
	"pdfmatch/internal/inventory"
)

// Kind classifies a row outcome.
type Kind int

const (
	KindUnmatched Kind = iota
	KindMatched
	KindMultiMatched
)

func (k Kind) String() string {
	switch k {
	case KindMatched:
		return "matched"
	case KindMultiMatched:
		return "multi_matched"
	default:
		return "unmatched"
	}
}

// Unmatched reasons.
const (
	ReasonEmptyField = "empty field"
	ReasonNoMatch    = "no matching file"
)

// Outcome is the classification of one row.
type Outcome struct {
	Kind Kind
	// Files holds the single file for KindMatched and every candidate, in key
	// discovery order, for KindMultiMatched.
	Files []inventory.FileRecord
	// Reason is set for KindUnmatched.
	Reason string
}

// Matched returns a single-file outcome.
func Matched(file inventory.FileRecord) Outcome {
	return Outcome{Kind: KindMatched, Files: []inventory.FileRecord{file}}
}

// Unmatched returns an outcome carrying reason.
func Unmatched(reason string) Outcome {
	return Outcome{Kind: KindUnmatched, Reason: reason}
}

// MultiMatched returns an ambiguous outcome. files must hold at least two entries.
func MultiMatched(files []inventory.FileRecord) Outcome {
	return Outcome{Kind: KindMultiMatched, Files: files}
}

// File returns the matched file of a KindMatched outcome.
func (o Outcome) File() (inventory.FileRecord, bool) {
	if o.Kind != KindMatched || len(o.Files) != 1 {
		return inventory.FileRecord{}, false
	}
	return o.Files[0], true
}

// Paths returns the locations of every file in the outcome.
func (o Outcome) Paths() []string {
	paths := make([]string, 0, len(o.Files))
	for _, f := range o.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// RowOutcome pairs a row with its classification.
type RowOutcome struct {
	Row     dataset.Row
	Outcome Outcome
}

// Result holds the classified rows of one source, each set in row order.
type Result struct {
	Matched      []RowOutcome
	Unmatched    []RowOutcome
	MultiMatched []RowOutcome
}

// Total returns the number of classified rows.
func (r Result) Total() int {
	return len(r.Matched) + len(r.Unmatched) + len(r.MultiMatched)
}

func (r *Result) add(row dataset.Row, outcome Outcome) {
	ro := RowOutcome{Row: row, Outcome: outcome}
	switch outcome.Kind {
	case KindMatched:
		r.Matched = append(r.Matched, ro)
	case KindMultiMatched:
		r.MultiMatched = append(r.MultiMatched, ro)
	default:
		r.Unmatched = append(r.Unmatched, ro)
	}
}

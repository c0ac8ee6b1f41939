package partition

import (
	"strconv"
	"strings"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/matching"
)

// Appended column names.
const (
	ColumnMatchedPath   = "Matched_PDF_Path"
	ColumnUnmatchReason = "Unmatch_Reason"
	ColumnMatchedPaths  = "Matched_PDF_Paths"
	ColumnMatchCount    = "Match_Count"
)

// PathSeparator joins candidate locations in ColumnMatchedPaths.
const PathSeparator = "; "

// Kinds lists the partition kinds in output order.
var Kinds = []matching.Kind{matching.KindMatched, matching.KindUnmatched, matching.KindMultiMatched}

// Partition is one annotated table for one source.
type Partition struct {
	Source  string
	Kind    matching.Kind
	Headers []string
	Rows    []dataset.Row
	// Target is the file location relative to the output root.
	Target string
}

// Empty reports whether the partition has no rows.
func (p Partition) Empty() bool {
	return len(p.Rows) == 0
}

// Set holds the three partitions of one source.
type Set struct {
	Matched      Partition
	Unmatched    Partition
	MultiMatched Partition
}

// All returns the partitions in Kinds order.
func (s Set) All() []Partition {
	return []Partition{s.Matched, s.Unmatched, s.MultiMatched}
}

// Build annotates the classified rows of result. headers is the dataset
// header order; the appended columns follow it. Input rows are not modified.
func Build(source string, headers []string, result matching.Result) Set {
	set := Set{
		Matched:      newPartition(source, matching.KindMatched, headers),
		Unmatched:    newPartition(source, matching.KindUnmatched, headers),
		MultiMatched: newPartition(source, matching.KindMultiMatched, headers),
	}
	for _, ro := range result.Matched {
		file, _ := ro.Outcome.File()
		set.Matched.Rows = append(set.Matched.Rows, ro.Row.With(ColumnMatchedPath, file.Path))
	}
	for _, ro := range result.Unmatched {
		set.Unmatched.Rows = append(set.Unmatched.Rows, ro.Row.With(ColumnUnmatchReason, ro.Outcome.Reason))
	}
	for _, ro := range result.MultiMatched {
		row := ro.Row.With(ColumnMatchedPaths, strings.Join(ro.Outcome.Paths(), PathSeparator))
		row = row.With(ColumnMatchCount, strconv.Itoa(len(ro.Outcome.Files)))
		set.MultiMatched.Rows = append(set.MultiMatched.Rows, row)
	}
	return set
}

func newPartition(source string, kind matching.Kind, headers []string) Partition {
	return Partition{
		Source:  source,
		Kind:    kind,
		Headers: dataset.AppendHeaders(headers, appendedColumns(kind)...),
		Target:  TargetName(source, kind),
	}
}

func appendedColumns(kind matching.Kind) []string {
	switch kind {
	case matching.KindMatched:
		return []string{ColumnMatchedPath}
	case matching.KindMultiMatched:
		return []string{ColumnMatchedPaths, ColumnMatchCount}
	default:
		return []string{ColumnUnmatchReason}
	}
}

package aggregate

import (
	"fmt"
	"path/filepath"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/matching"
	"pdfmatch/internal/partition"
)

// Aggregate file names under the output root.
const (
	FileMatched      = "ALL_MATCHED.csv"
	FileUnmatched    = "ALL_UNMATCHED.csv"
	FileMultiMatched = "ALL_MULTI_MATCHED.csv"
)

// Options controls identifier handling during a merge.
type Options struct {
	IdentifierColumn string
	ResolverBase     string
}

// Result holds the three merged tables of a run.
type Result struct {
	Matched      Table
	Unmatched    Table
	MultiMatched Table
	// Excluded counts unmatched rows dropped because another source matched
	// their identifier.
	Excluded int
	// Satisfied counts distinct identifiers present in the matched table.
	Satisfied int
}

// Merge runs the three merges in dependency order.
func Merge(matched, unmatched, multi []partition.Partition, opts Options) Result {
	matchedTable, satisfied := MergeMatched(matched, opts.IdentifierColumn)
	excluded := 0
	for _, p := range unmatched {
		for _, row := range p.Rows {
			if satisfied.Contains(row.Get(opts.IdentifierColumn)) {
				excluded++
			}
		}
	}
	return Result{
		Matched:      matchedTable,
		Unmatched:    MergeUnmatched(unmatched, opts.IdentifierColumn, satisfied, opts.ResolverBase),
		MultiMatched: MergeMultiMatched(multi, opts.IdentifierColumn, opts.ResolverBase),
		Excluded:     excluded,
		Satisfied:    len(satisfied),
	}
}

// MergeDir loads every partition under root and merges them.
func MergeDir(root string, opts Options) (Result, error) {
	loaded := make(map[matching.Kind][]partition.Partition, len(partition.Kinds))
	for _, kind := range partition.Kinds {
		parts, err := partition.LoadDir(root, kind)
		if err != nil {
			return Result{}, fmt.Errorf("load %s partitions: %w", kind, err)
		}
		loaded[kind] = parts
	}
	return Merge(loaded[matching.KindMatched], loaded[matching.KindUnmatched], loaded[matching.KindMultiMatched], opts), nil
}

// Write stores the non-empty tables of r under root and returns the paths
// written.
func Write(root string, r Result) ([]string, error) {
	outputs := []struct {
		name  string
		table Table
	}{
		{FileMatched, r.Matched},
		{FileUnmatched, r.Unmatched},
		{FileMultiMatched, r.MultiMatched},
	}
	var written []string
	for _, out := range outputs {
		if out.table.Empty() {
			continue
		}
		path := filepath.Join(root, out.name)
		if err := dataset.WriteCSV(path, out.table.Headers, out.table.Rows); err != nil {
			return written, fmt.Errorf("write %s: %w", out.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Package duplicates finds normalized-key collisions that make containment
// matching ambiguous: files whose names fold to the same key, and dataset
// values that fold to the same key.
//
// Findings are data-quality warnings returned as values. Whether to gate a
// run on them is the caller's decision.
package duplicates

import (
	"fmt"
	"strings"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/textutil"
)

// FileGroup is a set of files whose raw names share one normalized key.
type FileGroup struct {
	Key   string
	Names []string
}

// ValueCount is a column value that occurs more than once after normalization.
type ValueCount struct {
	// Sample is the first original value seen for the key.
	Sample string
	Count  int
}

// FindDuplicateFiles groups files by the normalized form of their raw names
// and returns every group with two or more members, in order of first
// appearance.
func FindDuplicateFiles(files []inventory.FileRecord, retainDigits bool) []FileGroup {
	order := make([]string, 0, len(files))
	groups := make(map[string][]string, len(files))
	for _, f := range files {
		key := textutil.Normalize(f.Name, retainDigits)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f.Name)
	}
	var out []FileGroup
	for _, key := range order {
		if names := groups[key]; len(names) > 1 {
			out = append(out, FileGroup{Key: key, Names: names})
		}
	}
	return out
}

// FindDuplicateColumnValues groups the non-blank values of column by
// normalized key and returns one entry per key seen more than once, in order
// of first appearance.
func FindDuplicateColumnValues(rows []dataset.Row, column string, retainDigits bool) []ValueCount {
	order := make([]string, 0, len(rows))
	first := make(map[string]string, len(rows))
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		value := row.Get(column)
		key := textutil.Normalize(value, retainDigits)
		if key == "" {
			// Blank, whitespace and punctuation-only values have no key.
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			first[key] = value
		}
		counts[key]++
	}
	var out []ValueCount
	for _, key := range order {
		if counts[key] > 1 {
			out = append(out, ValueCount{Sample: first[key], Count: counts[key]})
		}
	}
	return out
}

// Report collects the duplicate findings for one source.
type Report struct {
	Source string
	Column string
	Files  []FileGroup
	Values []ValueCount
}

// Check runs both detectors for one source.
func Check(source string, files []inventory.FileRecord, rows []dataset.Row, column string, retainDigits bool) Report {
	return Report{
		Source: source,
		Column: column,
		Files:  FindDuplicateFiles(files, retainDigits),
		Values: FindDuplicateColumnValues(rows, column, retainDigits),
	}
}

// Empty reports whether nothing was found.
func (r Report) Empty() bool {
	return len(r.Files) == 0 && len(r.Values) == 0
}

// Display limits for operator-facing summaries.
const (
	DisplayLimit = 10
	DisplayWidth = 60
)

// Lines renders the report for an operator. At most limit entries are listed
// per kind, followed by a "... and N more" trailer; values are cut to width
// runes. A limit or width of zero or less disables the bound.
func (r Report) Lines(limit, width int) []string {
	var lines []string
	if len(r.Files) > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d duplicate file name group(s)", r.Source, len(r.Files)))
		for i, group := range r.Files {
			if limit > 0 && i >= limit {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(r.Files)-limit))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", Truncate(group.Key, width), strings.Join(group.Names, ", ")))
		}
	}
	if len(r.Values) > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d duplicate %s value(s)", r.Source, len(r.Values), r.Column))
		for i, value := range r.Values {
			if limit > 0 && i >= limit {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(r.Values)-limit))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s (x%d)", Truncate(value.Sample, width), value.Count))
		}
	}
	return lines
}

// Truncate shortens s to width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + "..."
}

// Package aggregate merges per-source partitions into run-wide tables: every
// matched row, the unmatched rows still worth fetching, and every ambiguous
// row. Matched and ambiguous rows are tagged with their source; unmatched and
// ambiguous rows carry a retrieval link built from their identifier.
package aggregate

import (
	"strings"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/partition"
)

// Column names added during aggregation.
const (
	ColumnJournal      = "Journal"
	ColumnDownloadLink = "DOI_Download_Link"
)

// Table is one merged output table.
type Table struct {
	Headers []string
	Rows    []dataset.Row
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// IdentifierSet holds identifiers already satisfied by a matched row.
type IdentifierSet map[string]struct{}

// Contains reports whether id is in the set.
func (s IdentifierSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// MergeMatched concatenates matched partitions in order, tagging each row
// with its source, and returns the non-blank values of idColumn seen along
// the way.
func MergeMatched(parts []partition.Partition, idColumn string) (Table, IdentifierSet) {
	table := Table{Headers: unionHeaders(parts, true)}
	satisfied := make(IdentifierSet)
	for _, p := range parts {
		for _, row := range p.Rows {
			table.Rows = append(table.Rows, row.With(ColumnJournal, p.Source))
			if id := row.Get(idColumn); strings.TrimSpace(id) != "" {
				satisfied[id] = struct{}{}
			}
		}
	}
	return table, satisfied
}

// MergeUnmatched concatenates unmatched partitions in order, drops rows whose
// dedupColumn value is in exclude, keeps only the first row for each
// remaining value, and appends a retrieval link. Blank values count as one
// value for deduplication. Rows are not tagged with a source: after
// deduplication a row may stand for several.
func MergeUnmatched(parts []partition.Partition, dedupColumn string, exclude IdentifierSet, resolverBase string) Table {
	table := Table{Headers: dataset.AppendHeaders(unionHeaders(parts, false), ColumnDownloadLink)}
	seen := make(map[string]struct{})
	for _, p := range parts {
		for _, row := range p.Rows {
			id := row.Get(dedupColumn)
			if exclude.Contains(id) {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			table.Rows = append(table.Rows, row.With(ColumnDownloadLink, DownloadLink(id, resolverBase)))
		}
	}
	return table
}

// MergeMultiMatched concatenates multi-matched partitions in order without
// deduplication, tagging each row with its source and a retrieval link.
func MergeMultiMatched(parts []partition.Partition, idColumn, resolverBase string) Table {
	table := Table{Headers: dataset.AppendHeaders(unionHeaders(parts, true), ColumnDownloadLink)}
	for _, p := range parts {
		for _, row := range p.Rows {
			tagged := row.With(ColumnJournal, p.Source)
			table.Rows = append(table.Rows, tagged.With(ColumnDownloadLink, DownloadLink(row.Get(idColumn), resolverBase)))
		}
	}
	return table
}

// DownloadLink returns a retrieval link for identifier. Blank identifiers
// give "", identifiers that are already links are returned trimmed, and
// anything else is joined to resolverBase.
func DownloadLink(identifier, resolverBase string) string {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return ""
	}
	if strings.HasPrefix(id, "http") {
		return id
	}
	return strings.TrimRight(resolverBase, "/") + "/" + id
}

// unionHeaders returns every partition header in first-seen order, led by
// ColumnJournal when tagged.
func unionHeaders(parts []partition.Partition, tagged bool) []string {
	var headers []string
	if tagged {
		headers = []string{ColumnJournal}
	}
	for _, p := range parts {
		headers = dataset.AppendHeaders(headers, p.Headers...)
	}
	return headers
}

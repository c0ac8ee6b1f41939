// Package workflow runs pdfmatch end to end.
//
// A Runner resolves the sources of a run, then processes each one to
// completion before starting the next: load its dataset and documents,
// check for duplicate keys (pausing for acknowledgment when configured),
// match, and write the three partitions. Once every source has finished the
// partitions of the completed sources are merged into the run-wide tables.
//
// A failing source never stops the run. Its error is recorded on its
// SourceReport and in the ledger, and its rows stay out of aggregation.
// Only problems that affect every source (preflight failures, the output
// lock, source discovery) abort Run.
//
// Output directories are guarded by a file lock so two runs cannot
// interleave partitions. Dry runs take no lock and write nothing.
package workflow

// Package partition splits one source's match result into the matched,
// unmatched, and multi-matched tables, annotates each row copy with the
// columns its table needs, and persists the tables as CSV files.
//
// Layout under the output root:
//
//	matched/<SRC>_matched.csv
//	unmatched/<SRC>_unmatched.csv
//	multi_matched/<SRC>_multi_matched.csv
//
// Empty partitions are never written. LoadDir reads the files back for
// aggregation, taking the source name from the filename prefix before the
// first underscore.
package partition

// Package ledger records run history in a SQLite database: one row per run
// and one row per processed source, so operators can compare match rates
// across runs with `pdfmatch history`.
//
// The schema is embedded and versioned. Opening a database written by an
// incompatible version fails with ErrSchemaMismatch rather than migrating;
// the ledger holds history only and can be deleted safely.
package ledger

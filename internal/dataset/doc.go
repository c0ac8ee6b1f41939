// Package dataset reads and writes the header-driven tables that carry
// bibliographic records.
//
// Input tables come from CSV exports (UTF-8, with or without a byte order
// mark) or from the first worksheet of an XLSX workbook. Rows are addressed
// by column name and remember their position within the table. Rows are
// never mutated after loading: output columns are added to copies produced
// by Row.With.
//
// CSV output is written with a byte order mark so spreadsheet tools detect
// UTF-8, through a temporary file renamed into place.
package dataset

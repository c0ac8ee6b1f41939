// Package textutil provides text canonicalization for matching and filename
// sanitization.
//
// The primary use cases are:
//   - Reducing titles, identifiers, and filenames to a comparable key
//   - Sanitizing source names for safe use in output file names
//
// Normalized keys keep only ASCII lowercase letters, optionally digits.
// Everything else, including non-ASCII letters, is dropped rather than
// transliterated, so "Café" and "Caf" share a key.
package textutil

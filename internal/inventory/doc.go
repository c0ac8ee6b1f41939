// Package inventory discovers the inputs of a run: the per-source document
// directories, the documents inside them, and the dataset file that belongs
// to each source.
//
// Enumeration is non-recursive throughout. Hidden entries (leading ".") are
// ignored. Every listing is sorted by name so repeated runs over the same
// tree see the same order.
package inventory

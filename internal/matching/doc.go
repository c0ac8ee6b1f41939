// Package matching pairs dataset rows with documents by containment of
// normalized keys.
//
// Every document name is decoded under the source's naming profile and
// folded to a key. A row matches a document when the key is non-empty and
// the row's folded value starts with it. Each row receives exactly one
// Outcome: matched to one document, matched to several, or unmatched with a
// reason.
//
// Match is a pure computation over already-loaded inputs. The optional
// logger only observes; it never influences the result.
package matching

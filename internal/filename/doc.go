// Package filename derives the matchable part of a document's filename.
//
// Sources name their documents differently: some append "_<year>_<journal>"
// to the title, some name files after the trailing part of a DOI, and some
// carry numeric character references such as "#x3a;" where the title had
// punctuation. The decoders here undo those conventions so the remaining
// text can be normalized and compared against a dataset column.
package filename

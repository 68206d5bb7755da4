// Package buffer implements the mutable document model the structural
// transforms operate on.
//
// Coordinates are 0-based (Row, Col) in runes. Offsets count runes from the
// start of the document, with the newline between rows counting as one.
// Spans are half-open offset intervals: [Start, End).
package buffer

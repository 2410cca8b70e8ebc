// Package csvio reads and writes the delimited files exchanged between stages.
//
// Readers require a header row and fail with *MissingColumnsError before any
// row is returned when an expected column is absent. Writers always emit the
// header, even when no rows follow.
package csvio

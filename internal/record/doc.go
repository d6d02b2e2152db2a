// Package record derives the flat accessibility report row for one manifest.
//
// [Extract] applies every normalization rule of the report: ISBN recovery
// from the identifier or the manifest file name, list-to-string joining of
// accessMode and hazard, the accessModeSufficient rendering and its derived
// nonVisualReading flag, expansion of the open feature vocabulary into fixed
// 0/1 columns plus an overflow column, and image counting by format and by
// pixel-area bucket.
//
// The column set is fixed by the [Record] type, so every row of a batch has
// the same columns in the same order ([Columns]).
package record

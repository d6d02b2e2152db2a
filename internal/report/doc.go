// Package report turns a directory of publication manifests into one CSV
// accessibility report.
//
// Run lists the directly contained .json files in name order, loads each one
// through the manifest package, flattens it with record.Extract, and writes
// all rows with a fixed header. Manifests that fail to load are appended to
// the run's failure log and skipped; a batch with no loadable manifest
// returns ErrNoValidInput and writes nothing. Runs are serialized per output
// file with an advisory lock and can be recorded in the run history store.
package report

// Package store keeps a SQLite history of report runs.
//
// Each run of the extract command can be recorded together with the rows it
// produced, so earlier reports can be listed and re-read without the CSV.
// Schema changes are numbered scripts under migrations/; the database's
// user_version records how many have been applied.
package store

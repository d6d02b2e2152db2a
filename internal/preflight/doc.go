// Package preflight provides readiness checks for the directories and
// external manifest tools a11yextractor depends on.
//
// The CLI "status" command renders RunAll; "manifests" checks the selected
// tool before walking a tree so a missing binary fails fast instead of once
// per EPUB.
package preflight

// Package logging assembles the structured slog loggers used by the extractor
// CLI and its pipeline packages.
//
// It owns the console and JSON handlers, level parsing, and output routing,
// and provides attribute helpers so every component tags its lines with the
// same keys (component, event_type, run_id, file). A no-op logger is available
// for tests and wiring code that cannot fail.
//
// [FailureLog] is the plain-text side file that records manifests which could
// not be loaded. It is opened once per batch run and passed explicitly to the
// code that needs it.
package logging

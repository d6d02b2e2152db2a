// Package main hosts the a11yextractor CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into report runs,
// manifest generation over EPUB trees, single-manifest inspection, corpus
// summaries, and run history queries. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

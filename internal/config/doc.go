// Package config loads, normalizes, and validates a11yextractor configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// READIUM_PATH and RWP_PATH for the manifest generators. It also reads the
// legacy key=value preferences.txt used by manifest generation.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

// Package config loads, normalizes, and validates pdfmatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// matcher and CLI need: where the per-source document directories and the
// bibliographic datasets live, which sources use identifier matching or carry
// encoding artifacts in their filenames, and where partitions, aggregates,
// logs, and the run ledger are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

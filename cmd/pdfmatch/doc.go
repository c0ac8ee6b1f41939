// Package main hosts the pdfmatch CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into workflow runs,
// aggregate rebuilds, readiness checks, ledger queries, and configuration
// scaffolding. Config resolution, logger setup, and ledger access live in
// the shared command context so subcommands only deal with flags and
// rendering.
//
// Keep this package thin: matching behavior belongs in internal/workflow and
// the packages beneath it.
package main

// Package cli implements the command-line interface for logscout.
//
// The cli package provides the Cobra-based CLI: it assembles the run
// configuration from an optional YAML file plus flags, wires the fetcher,
// pagination strategy, and search controller together, and formats the
// outcome as text or JSON. Exit codes distinguish a found match (0), an
// error (1), and a clean no-match run (2).
package cli

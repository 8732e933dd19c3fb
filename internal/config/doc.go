// Package config holds the immutable configuration for one search run.
//
// A run is described by a target date range (inclusive on both ends) and
// the site settings: base URL, pagination strategy, row selectors, and
// politeness knobs. Configuration is assembled once at process start from
// an optional YAML file plus command-line overrides, validated, and then
// passed around by value; there is no process-wide mutable state.
package config

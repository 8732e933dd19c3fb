// Package scrape extracts dated entries from listing pages.
//
// Markup on the target sites is not stable, so extraction runs as ordered
// fallback chains: row candidates come from the first row selector that
// matches anything, and each row goes through a structured cell-pair
// strategy before falling back to its flattened text. A row with no
// recoverable date is skipped silently; the page parser still records the
// oldest date it managed to parse, which is what lets the search stop once
// the listing has moved past the target range.
package scrape

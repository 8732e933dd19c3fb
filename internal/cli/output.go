package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/search"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputEntry is one matched entry in output form.
type OutputEntry struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// OutputResult contains data to be output
type OutputResult struct {
	SearchedAt time.Time     `json:"searched_at"`
	RangeStart string        `json:"range_start"`
	RangeEnd   string        `json:"range_end"`
	Status     string        `json:"status"`
	Pages      int           `json:"pages_checked"`
	Page       int           `json:"page,omitempty"`
	URL        string        `json:"url,omitempty"`
	Entries    []OutputEntry `json:"entries,omitempty"`
}

// NewOutputResult converts a search result for display.
func NewOutputResult(rng config.Range, result *search.Result) *OutputResult {
	out := &OutputResult{
		SearchedAt: time.Now().UTC(),
		RangeStart: rng.Start.Format(config.DateLayout),
		RangeEnd:   rng.End.Format(config.DateLayout),
		Status:     string(result.Status),
		Pages:      result.Pages,
		Page:       result.Page,
		URL:        result.URL,
	}
	for _, e := range result.Entries {
		out.Entries = append(out.Entries, OutputEntry{
			Title: e.Title,
			Date:  e.Date.Format(config.DateLayout),
		})
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	switch search.Status(result.Status) {
	case search.StatusFound:
		fmt.Fprintf(w, "Found %d entries from %s to %s on page %d:\n",
			len(result.Entries), result.RangeStart, result.RangeEnd, result.Page)
		for _, e := range result.Entries {
			fmt.Fprintf(w, "  - %s | %s\n", e.Date, e.Title)
		}
		fmt.Fprintf(w, "\nFirst matching page: %d\n", result.Page)
		fmt.Fprintf(w, "URL: %s\n", result.URL)
	case search.StatusExhaustedOlder:
		fmt.Fprintf(w, "Reached entries older than %s after %d pages. No match found.\n",
			result.RangeStart, result.Pages)
	case search.StatusExhaustedPages:
		fmt.Fprintf(w, "No more pages after %d. No match found.\n", result.Pages)
	default:
		return fmt.Errorf("unknown status: %s", result.Status)
	}
	return nil
}

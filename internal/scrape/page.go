package scrape

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
)

// DefaultRowSelectors matches plain table bodies first, then the
// site-specific report table markup.
var DefaultRowSelectors = []string{
	"table tbody tr",
	".report-overview-table tr",
}

// PageResult aggregates one page: the rows whose dates fall inside the
// target range, plus the oldest date parsed from any row at all. Oldest is
// the termination signal and is tracked regardless of match status.
type PageResult struct {
	Matches   []Entry
	Oldest    time.Time
	HasOldest bool
}

// ParsePage runs every candidate row on the page through row extraction
// and collects the entries inside rng. Row candidates come from the first
// selector in rowSelectors that yields any nodes; selector lists are never
// merged, so a row matched by two patterns cannot be counted twice. The
// whole page is always scanned, even after a match, because Oldest must
// reflect every parsed row.
func ParsePage(doc *goquery.Document, rng config.Range, rowSelectors []string) PageResult {
	if len(rowSelectors) == 0 {
		rowSelectors = DefaultRowSelectors
	}

	var rows *goquery.Selection
	for _, sel := range rowSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			rows = s
			break
		}
	}

	var result PageResult
	if rows == nil {
		return result
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		entry, ok := extractRow(row)
		if !ok {
			return
		}
		logger.IncrCounter("rows.parsed")

		if !result.HasOldest || entry.Date.Before(result.Oldest) {
			result.Oldest = entry.Date
			result.HasOldest = true
		}
		if rng.Contains(entry.Date) {
			result.Matches = append(result.Matches, entry)
		}
	})

	return result
}

package datex

import (
	"regexp"
	"strings"
	"time"
)

// layouts are tried in order against the whole trimmed string. Order
// matters where formats overlap: 1/2/06 would swallow the first two digits
// of a four-digit year, so it comes after 1/2/2006.
var layouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// patterns pull a date-shaped substring out of text that is not a date on
// its own (a flattened table row, a title with an embedded date). Each
// pattern carries the layout used to parse its match. The four-digit-year
// pattern must run before the two-digit one for the same overlap reason as
// above.
var patterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`), "1/2/2006"},
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2}`), "1/2/06"},
}

// Extract attempts to recover a calendar date from text. Whole-string
// layouts are tried first, then the substring patterns; the first
// successful parse wins. Returns false when the text holds no recognizable
// date.
func Extract(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	for _, p := range patterns {
		match := p.re.FindString(text)
		if match == "" {
			continue
		}
		if t, err := time.Parse(p.layout, match); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

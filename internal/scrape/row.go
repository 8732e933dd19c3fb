package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lswan/logscout/internal/datex"
)

// Entry is one dated listing row.
type Entry struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// UnknownTitle is used when a dated row carries no link to name it by.
const UnknownTitle = "Unknown"

// cellPair is one known table layout: where the date cell and the title
// cell live relative to the row.
type cellPair struct {
	date  string
	title string
}

// structuredPairs are tried in priority order against each row.
var structuredPairs = []cellPair{
	{date: "td.date", title: "td.description a"},
	{date: "td time", title: "td a"},
	{date: "td:first-child", title: "td:last-child"},
}

// rowStrategy recovers an Entry from one listing row, reporting false when
// the row yields nothing usable.
type rowStrategy func(*goquery.Selection) (Entry, bool)

var rowStrategies = []rowStrategy{extractStructured, extractUnstructured}

// extractRow applies each strategy in order; first success wins.
func extractRow(row *goquery.Selection) (Entry, bool) {
	for _, strategy := range rowStrategies {
		if e, ok := strategy(row); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// extractStructured resolves a (date cell, title cell) pair from one of
// the known table layouts. Both cells must resolve and the date cell must
// actually parse as a date.
func extractStructured(row *goquery.Selection) (Entry, bool) {
	for _, pair := range structuredPairs {
		dateCell := row.Find(pair.date).First()
		titleCell := row.Find(pair.title).First()
		if dateCell.Length() == 0 || titleCell.Length() == 0 {
			continue
		}
		// A single-cell row resolves both selectors to the same node;
		// that is not a (date, title) pair.
		if dateCell.Nodes[0] == titleCell.Nodes[0] {
			continue
		}

		date, ok := datex.Extract(dateCell.Text())
		if !ok {
			continue
		}
		title := flatten(titleCell.Text())
		if title == "" {
			continue
		}
		return Entry{Title: title, Date: date}, true
	}
	return Entry{}, false
}

// extractUnstructured treats the whole row text as the date source and the
// first link as the title.
func extractUnstructured(row *goquery.Selection) (Entry, bool) {
	date, ok := datex.Extract(row.Text())
	if !ok {
		return Entry{}, false
	}

	title := UnknownTitle
	if link := row.Find("a").First(); link.Length() > 0 {
		if t := flatten(link.Text()); t != "" {
			title = t
		}
	}
	return Entry{Title: title, Date: date}, true
}

// flatten collapses runs of whitespace so multi-line cell text compares
// cleanly.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

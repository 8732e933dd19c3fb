package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/paginate"
)

// fakePager serves pre-built pages in order, then reports exhaustion.
type fakePager struct {
	pages  []*paginate.Page
	served int
	closed bool
	err    error
}

func (f *fakePager) Next(_ context.Context) (*paginate.Page, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.served >= len(f.pages) {
		return nil, false, nil
	}
	page := f.pages[f.served]
	f.served++
	return page, true, nil
}

func (f *fakePager) Close() error {
	f.closed = true
	return nil
}

// pageOf builds a listing page holding one table row per date.
func pageOf(t *testing.T, number int, dates ...string) *paginate.Page {
	t.Helper()
	var rows strings.Builder
	for i, d := range dates {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td><a href="/r/%d">entry %d</a></td></tr>`, d, i, i)
	}
	html := fmt.Sprintf(`<html><body><table><tbody>%s</tbody></table></body></html>`, rows.String())
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return &paginate.Page{
		Doc:    doc,
		URL:    fmt.Sprintf("https://example.com/reports?page=%d", number),
		Number: number,
	}
}

func emptyPage(t *testing.T, number int) *paginate.Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>maintenance</p></body></html>`))
	require.NoError(t, err)
	return &paginate.Page{Doc: doc, URL: fmt.Sprintf("https://example.com/reports?page=%d", number), Number: number}
}

func testConfig() config.Config {
	return config.Config{
		Range: config.Range{
			Start: time.Date(2021, time.May, 18, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		Site: config.Site{BaseURL: "https://example.com/reports", Strategy: config.StrategyQuery},
	}
}

func TestRunFoundStopsImmediately(t *testing.T) {
	pager := &fakePager{pages: []*paginate.Page{
		pageOf(t, 1, "2021-06-10", "2021-05-20"),
		pageOf(t, 2, "2021-05-19"), // would also match, must never be fetched
	}}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusFound, result.Status)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "entry 1", result.Entries[0].Title)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, "https://example.com/reports?page=1", result.URL)
	assert.Equal(t, 1, pager.served, "must not advance past the winning page")
}

func TestRunExhaustedOlderStopsWithoutAdvancing(t *testing.T) {
	pager := &fakePager{pages: []*paginate.Page{
		pageOf(t, 1, "2021-06-10", "2021-06-05"),
		pageOf(t, 2, "2021-06-02", "2021-05-10"), // oldest precedes range start, no match
		pageOf(t, 3, "2021-05-20"),               // must never be fetched
	}}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusExhaustedOlder, result.Status)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 2, pager.served, "must stop on the page that proved exhaustion")
}

func TestRunExhaustedPages(t *testing.T) {
	// Every page's oldest date is newer than the range end, so neither
	// stop rule fires before pagination runs out.
	pager := &fakePager{pages: []*paginate.Page{
		pageOf(t, 1, "2021-06-10"),
		pageOf(t, 2, "2021-06-08"),
		pageOf(t, 3, "2021-06-05"),
	}}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusExhaustedPages, result.Status)
	assert.Empty(t, result.Entries)
	assert.Equal(t, 3, result.Pages)
}

func TestRunDatelessPagesDoNotTerminate(t *testing.T) {
	pager := &fakePager{pages: []*paginate.Page{
		emptyPage(t, 1),
		pageOf(t, 2, "2021-05-20"),
	}}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusFound, result.Status, "a page with no parsable dates must not stop the crawl")
	assert.Equal(t, 2, result.Page)
}

func TestRunZeroPages(t *testing.T) {
	pager := &fakePager{}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusExhaustedPages, result.Status)
	assert.Zero(t, result.Pages)
}

func TestRunMatchBoundariesInclusive(t *testing.T) {
	pager := &fakePager{pages: []*paginate.Page{
		pageOf(t, 1, "2021-06-01", "2021-05-18"),
	}}

	result, err := Run(context.Background(), pager, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, StatusFound, result.Status)
	assert.Len(t, result.Entries, 2, "both range bounds are inclusive")
}

func TestRunTransportErrorSurfaces(t *testing.T) {
	pager := &fakePager{err: errors.New("unexpected status code: 502")}

	_, err := Run(context.Background(), pager, testConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRunRejectsInvalidConfigBeforeFetching(t *testing.T) {
	pager := &fakePager{pages: []*paginate.Page{pageOf(t, 1, "2021-05-20")}}

	cfg := testConfig()
	cfg.Range.Start, cfg.Range.End = cfg.Range.End.AddDate(0, 1, 0), cfg.Range.Start

	_, err := Run(context.Background(), pager, cfg, nil)
	require.Error(t, err)
	assert.Zero(t, pager.served, "invalid configuration must be rejected before any fetch")
}

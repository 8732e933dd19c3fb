package paginate

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
)

// QueryPager pages by substituting an incrementing page number into the
// base URL's query string. Each fetched document is scanned for a next
// control; a page without one is treated as the last page, so the driver
// never requests past the end of the listing.
type QueryPager struct {
	fetcher  Fetcher
	site     config.Site
	throttle *throttle
	page     int
	done     bool
}

// NewQueryPager builds the query-parameter strategy.
func NewQueryPager(f Fetcher, site config.Site) *QueryPager {
	return &QueryPager{
		fetcher:  f,
		site:     site,
		throttle: newThrottle(site.Delay),
	}
}

// Next fetches the following page number.
func (p *QueryPager) Next(ctx context.Context) (*Page, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if err := p.throttle.wait(ctx); err != nil {
		return nil, false, err
	}

	p.page++
	pageURL, err := p.pageURL(p.page)
	if err != nil {
		return nil, false, err
	}

	doc, err := p.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, false, fmt.Errorf("fetching page %d: %w", p.page, err)
	}
	logger.IncrCounter("pages.fetched")

	if !hasNextControl(doc) {
		p.done = true
	}
	return &Page{Doc: doc, URL: pageURL, Number: p.page}, true, nil
}

func (p *QueryPager) pageURL(page int) (string, error) {
	u, err := url.Parse(p.site.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	for k, v := range p.site.Params {
		q.Set(k, v)
	}
	param := p.site.PageParam
	if param == "" {
		param = config.DefaultPageParam
	}
	q.Set(param, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Close is a no-op; the query strategy holds no session resource.
func (p *QueryPager) Close() error { return nil }

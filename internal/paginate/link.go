package paginate

import (
	"context"
	"fmt"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
)

// LinkPager follows the "next" anchor from page to page, starting at the
// site base URL. Relative hrefs resolve against the page they appeared on.
// A page without a next anchor is the last page.
type LinkPager struct {
	fetcher  Fetcher
	site     config.Site
	throttle *throttle
	nextURL  string
	page     int
	done     bool
}

// NewLinkPager builds the link-following strategy.
func NewLinkPager(f Fetcher, site config.Site) *LinkPager {
	return &LinkPager{
		fetcher:  f,
		site:     site,
		throttle: newThrottle(site.Delay),
		nextURL:  site.BaseURL,
	}
}

// Next fetches the page the previous page's next anchor pointed at.
func (p *LinkPager) Next(ctx context.Context) (*Page, bool, error) {
	if p.done || p.nextURL == "" {
		return nil, false, nil
	}
	if err := p.throttle.wait(ctx); err != nil {
		return nil, false, err
	}

	p.page++
	pageURL := p.nextURL

	doc, err := p.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, false, fmt.Errorf("fetching page %d: %w", p.page, err)
	}
	logger.IncrCounter("pages.fetched")

	if next, ok := findNextHref(doc, pageURL); ok {
		p.nextURL = next
	} else {
		p.done = true
	}
	return &Page{Doc: doc, URL: pageURL, Number: p.page}, true, nil
}

// Close is a no-op; the link strategy holds no session resource.
func (p *LinkPager) Close() error { return nil }

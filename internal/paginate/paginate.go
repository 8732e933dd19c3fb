package paginate

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lswan/logscout/internal/config"
)

// Page is one fetched listing page.
type Page struct {
	Doc    *goquery.Document
	URL    string
	Number int
}

// Pager walks the site's page sequence. Next returns ok=false once
// pagination is exhausted; exhaustion is a normal stopping condition, not
// an error. Close releases any session resource and must be called on
// every exit path.
type Pager interface {
	Next(ctx context.Context) (page *Page, ok bool, err error)
	Close() error
}

// Fetcher is the page-fetch collaborator used by the stateless strategies.
type Fetcher interface {
	Get(ctx context.Context, url string) (*goquery.Document, error)
}

// New builds the pager for the configured strategy.
func New(f Fetcher, site config.Site) (Pager, error) {
	switch site.Strategy {
	case config.StrategyQuery, "":
		return NewQueryPager(f, site), nil
	case config.StrategyLink:
		return NewLinkPager(f, site), nil
	case config.StrategyBrowser:
		return NewBrowserPager(site)
	default:
		return nil, fmt.Errorf("unknown pagination strategy: %q", site.Strategy)
	}
}

// throttle enforces the minimum inter-page delay. The first wait is free;
// later waits sleep out the remainder of the delay window.
type throttle struct {
	delay time.Duration
	last  time.Time
}

func newThrottle(delay time.Duration) *throttle {
	if delay <= 0 {
		delay = config.DefaultDelay
	}
	return &throttle{delay: delay}
}

func (t *throttle) wait(ctx context.Context) error {
	if !t.last.IsZero() {
		if rest := t.delay - time.Since(t.last); rest > 0 {
			timer := time.NewTimer(rest)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	t.last = time.Now()
	return nil
}

package paginate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
)

// nextControlSelectors are tried in order when looking for a clickable
// next-page control.
var nextControlSelectors = []string{
	`a[rel="next"]`,
	`.pagination a.next`,
	`.pagination .next a`,
	`button.next`,
	`a.next-page`,
}

// settleWait gives client-side scripts time to fill the listing after a
// navigation or click before the DOM is snapshotted.
const settleWait = 3 * time.Second

// clickTimeout bounds one attempt at a single next-control selector; a
// selector that is absent should fail fast so the chain can move on.
const clickTimeout = 2 * time.Second

var errNoNextControl = errors.New("no next-page control found")

// BrowserPager drives a headless Chrome session for listings rendered
// client-side. One tab is reused for the whole run; Close releases the
// browser on every exit path.
type BrowserPager struct {
	site        config.Site
	throttle    *throttle
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	page        int
	started     bool
	done        bool
}

// NewBrowserPager launches the allocator for the interactive strategy. The
// browser process itself starts lazily on the first Next call.
func NewBrowserPager(site config.Site) (*BrowserPager, error) {
	userAgent := site.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	return &BrowserPager{
		site:        site,
		throttle:    newThrottle(site.Delay),
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
	}, nil
}

// Next navigates to the first page on the initial call and advances by
// clicking a next control afterwards. A run with no clickable control and
// no next anchor in the document signals exhaustion.
func (p *BrowserPager) Next(ctx context.Context) (*Page, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if err := p.throttle.wait(ctx); err != nil {
		return nil, false, err
	}

	if !p.started {
		if err := p.run(p.timeout(), chromedp.Navigate(p.site.BaseURL)); err != nil {
			return nil, false, fmt.Errorf("navigating to %s: %w", p.site.BaseURL, err)
		}
		p.started = true
	} else {
		switch err := p.advance(); {
		case errors.Is(err, errNoNextControl):
			p.done = true
			return nil, false, nil
		case err != nil:
			return nil, false, err
		}
	}

	p.settle()

	doc, pageURL, err := p.snapshot()
	if err != nil {
		return nil, false, err
	}
	logger.IncrCounter("pages.fetched")

	p.page++
	return &Page{Doc: doc, URL: pageURL, Number: p.page}, true, nil
}

// advance clicks the first next-control selector that resolves and
// actually navigates. A click that leaves the URL unchanged is an inert
// control (disabled last-page arrow); accepting it would pin the run to
// one page forever. When no selector produces a navigation, advance falls
// back to scanning the current document for a next anchor and navigating
// there directly.
func (p *BrowserPager) advance() error {
	var before string
	if err := p.run(p.timeout(), chromedp.Location(&before)); err != nil {
		return fmt.Errorf("reading page location: %w", err)
	}

	for _, sel := range nextControlSelectors {
		if err := p.run(clickTimeout, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
			continue
		}
		// The navigation the click triggers is asynchronous; give it the
		// click window before reading the URL back.
		var after string
		if err := p.run(p.timeout(), chromedp.Sleep(clickTimeout), chromedp.Location(&after)); err != nil {
			return fmt.Errorf("reading page location: %w", err)
		}
		if navigated(before, after) {
			return nil
		}
	}

	doc, pageURL, err := p.snapshot()
	if err != nil {
		return err
	}
	next, ok := findNextHref(doc, pageURL)
	if !ok {
		return errNoNextControl
	}
	if err := p.run(p.timeout(), chromedp.Navigate(next)); err != nil {
		return fmt.Errorf("navigating to %s: %w", next, err)
	}
	return nil
}

// navigated reports whether a click moved the tab to a new location.
func navigated(before, after string) bool {
	return after != "" && after != before
}

// settle waits for the listing to appear after navigation. The wait for a
// table is best effort; pages that never render one still get the fixed
// settle period.
func (p *BrowserPager) settle() {
	_ = p.run(settleWait, chromedp.WaitReady("table", chromedp.ByQuery))
	_ = p.run(p.timeout(), chromedp.Sleep(settleWait))
}

// snapshot reads the current DOM and location out of the tab.
func (p *BrowserPager) snapshot() (*goquery.Document, string, error) {
	var html, location string
	err := p.run(p.timeout(),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, "", fmt.Errorf("reading page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, location, nil
}

func (p *BrowserPager) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(p.tabCtx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (p *BrowserPager) timeout() time.Duration {
	if p.site.Timeout > 0 {
		return p.site.Timeout
	}
	return config.DefaultTimeout
}

// Close tears down the tab and the browser process.
func (p *BrowserPager) Close() error {
	p.tabCancel()
	p.allocCancel()
	return nil
}

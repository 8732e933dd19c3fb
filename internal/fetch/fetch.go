package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
)

const maxRetries = 3

// retryInitialInterval seeds the exponential backoff; tests shrink it.
var retryInitialInterval = 500 * time.Millisecond

// Client fetches listing pages over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
	cookie    string
}

// New builds a client from the site settings.
func New(site config.Site) *Client {
	timeout := site.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	userAgent := site.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		cookie:    site.Cookie,
	}
}

// Get fetches url and parses the response body. Transient failures are
// retried up to maxRetries times before the error is surfaced.
func (c *Client) Get(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	operation := func() error {
		started := time.Now()
		var err error
		doc, err = c.get(ctx, url)
		if err == nil {
			logger.RecordTiming("page.fetch", time.Since(started))
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing HTML: %w", err))
	}
	return doc, nil
}

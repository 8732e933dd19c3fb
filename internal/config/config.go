package config

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for dates in flags, config files, and
// output.
const DateLayout = "2006-01-02"

// Pagination strategies.
const (
	StrategyQuery   = "query"
	StrategyLink    = "link"
	StrategyBrowser = "browser"
)

const (
	DefaultUserAgent = "logscout/1.0 (github.com/lswan/logscout)"
	DefaultTimeout   = 30 * time.Second
	DefaultDelay     = 1 * time.Second
	DefaultPageParam = "page"
)

// Range is the inclusive target date interval for a run.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a date in DateLayout form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Validate rejects an inverted range. Must pass before the first fetch.
func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("range start and end are required")
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("range start %s is after end %s",
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether d falls inside the range, inclusive both ends.
func (r Range) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Site describes the listing site being searched.
type Site struct {
	// BaseURL is the listing URL. The query strategy appends its page
	// parameter to it; the link and browser strategies start from it.
	BaseURL string

	// Strategy selects the pagination driver: query, link, or browser.
	Strategy string

	// PageParam is the query parameter holding the page number.
	PageParam string

	// Params are extra query parameters pinned on every page URL.
	Params map[string]string

	// RowSelectors are tried in priority order when enumerating listing
	// rows; the first selector yielding any nodes wins.
	RowSelectors []string

	UserAgent string

	// Cookie is passed through verbatim on HTTP requests when set.
	Cookie string

	// Timeout bounds a single fetch or browser action.
	Timeout time.Duration

	// Delay is the minimum pause between page fetches.
	Delay time.Duration
}

// Config is the single immutable configuration value for one run.
type Config struct {
	Range Range
	Site  Site
}

// ApplyDefaults fills zero-valued site fields.
func (c *Config) ApplyDefaults() {
	if c.Site.Strategy == "" {
		c.Site.Strategy = StrategyQuery
	}
	if c.Site.PageParam == "" {
		c.Site.PageParam = DefaultPageParam
	}
	if c.Site.UserAgent == "" {
		c.Site.UserAgent = DefaultUserAgent
	}
	if c.Site.Timeout <= 0 {
		c.Site.Timeout = DefaultTimeout
	}
	if c.Site.Delay <= 0 {
		c.Site.Delay = DefaultDelay
	}
}

// Validate checks the whole configuration. Configuration failures are
// fatal and must be reported before any network traffic.
func (c *Config) Validate() error {
	if err := c.Range.Validate(); err != nil {
		return err
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site URL is required")
	}
	switch c.Site.Strategy {
	case StrategyQuery, StrategyLink, StrategyBrowser:
	default:
		return fmt.Errorf("unknown pagination strategy: %q", c.Site.Strategy)
	}
	return nil
}

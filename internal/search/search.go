package search

import (
	"context"
	"fmt"
	"io"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/logger"
	"github.com/lswan/logscout/internal/paginate"
	"github.com/lswan/logscout/internal/scrape"
)

// Status is the terminal state of a run.
type Status string

const (
	// StatusFound: the current page held at least one in-range entry.
	StatusFound Status = "found"
	// StatusExhaustedOlder: the oldest date on a page preceded the range
	// start, so no later page can match.
	StatusExhaustedOlder Status = "exhausted-older"
	// StatusExhaustedPages: pagination ended before either condition hit.
	StatusExhaustedPages Status = "exhausted-pages"
)

// Result is the outcome of one run. Entries is non-empty exactly when
// Status is StatusFound, in row discovery order from the winning page.
type Result struct {
	Status  Status
	Entries []scrape.Entry
	Page    int    // winning page number when found
	URL     string // winning page URL when found
	Pages   int    // pages examined in total
}

// Run walks pages through pager until a terminal state is reached: fetch,
// parse, then decide to stop or advance. The configuration must validate
// before the first fetch. Transport errors end the run; parse gaps do not.
func Run(ctx context.Context, pager paginate.Pager, cfg config.Config, log *logger.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.New(logger.LevelError, io.Discard)
	}

	result := &Result{}
	for {
		page, ok, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Info("no more pages, no match", logger.Fields{"pages": result.Pages})
			result.Status = StatusExhaustedPages
			return result, nil
		}
		result.Pages = page.Number
		log.Debug("fetched page", logger.Fields{"page": page.Number, "url": page.URL})

		parsed := scrape.ParsePage(page.Doc, cfg.Range, cfg.Site.RowSelectors)

		if len(parsed.Matches) > 0 {
			log.Info("found matching entries", logger.Fields{
				"page":  page.Number,
				"count": len(parsed.Matches),
			})
			result.Status = StatusFound
			result.Entries = parsed.Matches
			result.Page = page.Number
			result.URL = page.URL
			return result, nil
		}

		if !parsed.HasOldest {
			log.Debug("no dates found on page", logger.Fields{"page": page.Number})
			continue
		}

		log.Debug("oldest date on page", logger.Fields{
			"page": page.Number,
			"date": parsed.Oldest.Format(config.DateLayout),
		})
		if parsed.Oldest.Before(cfg.Range.Start) {
			log.Info("listing moved past the target range", logger.Fields{
				"page":   page.Number,
				"oldest": parsed.Oldest.Format(config.DateLayout),
			})
			result.Status = StatusExhaustedOlder
			return result, nil
		}
	}
}

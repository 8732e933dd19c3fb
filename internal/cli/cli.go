package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lswan/logscout/internal/config"
	"github.com/lswan/logscout/internal/fetch"
	"github.com/lswan/logscout/internal/logger"
	"github.com/lswan/logscout/internal/paginate"
	"github.com/lswan/logscout/internal/search"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoMatch = 2
)

// exitCode is applied by Execute once the command has returned and every
// deferred cleanup has run; os.Exit inside runSearch would skip the
// pager's Close.
var exitCode = ExitSuccess

// newPager builds the pagination driver; tests substitute a stub.
var newPager = paginate.New

var (
	flagConfig    string
	flagURL       string
	flagStart     string
	flagEnd       string
	flagStrategy  string
	flagPageParam string
	flagParams    []string
	flagSelectors []string
	flagCookie    string
	flagUserAgent string
	flagTimeout   time.Duration
	flagDelay     time.Duration
	flagFormat    string
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logscout",
		Short: "Search a paginated report listing for entries in a date range",
		Long: `Searches a paginated, server-rendered report listing for entries whose
publication date falls inside a target range, stopping as soon as a match
is found or the listing provably cannot contain one.`,
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagURL, "url", "", "Listing base URL")
	cmd.Flags().StringVar(&flagStart, "start", "", "Range start date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "Range end date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&flagStrategy, "strategy", "", "Pagination strategy: query, link, or browser")
	cmd.Flags().StringVar(&flagPageParam, "page-param", "", "Query parameter holding the page number")
	cmd.Flags().StringArrayVar(&flagParams, "param", nil, "Extra query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&flagSelectors, "row-selector", nil, "Row selector tried in order (repeatable)")
	cmd.Flags().StringVar(&flagCookie, "cookie", "", "Cookie header passed through verbatim")
	cmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "User-Agent header")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout")
	cmd.Flags().DurationVar(&flagDelay, "delay", 0, "Minimum delay between page fetches")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and a metrics summary")

	return cmd
}

// buildConfig assembles the run configuration: file values first, then
// flag overrides, then defaults, then validation.
func buildConfig() (*config.Config, error) {
	var cfg config.Config

	if flagConfig != "" {
		file, err := config.LoadFile(flagConfig)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("config file not found: %s", flagConfig)
		}
		file.Apply(&cfg)
	}

	if flagURL != "" {
		cfg.Site.BaseURL = flagURL
	}
	if flagStart != "" {
		start, err := config.ParseDate(flagStart)
		if err != nil {
			return nil, err
		}
		cfg.Range.Start = start
	}
	if flagEnd != "" {
		end, err := config.ParseDate(flagEnd)
		if err != nil {
			return nil, err
		}
		cfg.Range.End = end
	}
	if flagStrategy != "" {
		cfg.Site.Strategy = strings.ToLower(flagStrategy)
	}
	if flagPageParam != "" {
		cfg.Site.PageParam = flagPageParam
	}
	if len(flagParams) > 0 {
		params, err := parseParams(flagParams)
		if err != nil {
			return nil, err
		}
		cfg.Site.Params = params
	}
	if len(flagSelectors) > 0 {
		cfg.Site.RowSelectors = flagSelectors
	}
	if flagCookie != "" {
		cfg.Site.Cookie = flagCookie
	}
	if flagUserAgent != "" {
		cfg.Site.UserAgent = flagUserAgent
	}
	if flagTimeout > 0 {
		cfg.Site.Timeout = flagTimeout
	}
	if flagDelay > 0 {
		cfg.Site.Delay = flagDelay
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// parseParams splits repeated key=value flags into a map.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// runSearch is the main command logic
func runSearch(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	runID := uuid.NewString()
	log.Info("starting search", logger.Fields{
		"run":      runID,
		"url":      cfg.Site.BaseURL,
		"strategy": cfg.Site.Strategy,
		"start":    cfg.Range.Start.Format(config.DateLayout),
		"end":      cfg.Range.End.Format(config.DateLayout),
	})

	fetcher := fetch.New(cfg.Site)
	pager, err := newPager(fetcher, cfg.Site)
	if err != nil {
		return err
	}
	defer pager.Close()

	result, err := search.Run(context.Background(), pager, *cfg, log)
	if err != nil {
		log.Error("search failed", logger.Fields{"run": runID}, err)
		return err
	}

	if flagVerbose {
		log.Debug("run metrics", logger.Fields{"run": runID, "metrics": logger.MetricsSnapshot()})
	}

	output := NewOutputResult(cfg.Range, result)
	if err := WriteOutput(os.Stdout, output, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Status == search.StatusFound {
		exitCode = ExitSuccess
	} else {
		exitCode = ExitNoMatch
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	if exitCode != ExitSuccess {
		os.Exit(exitCode)
	}
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout of a logscout config file. Duration
// and date fields are strings in the file and parsed in File.
type fileConfig struct {
	Range struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"range"`
	Site struct {
		URL          string            `yaml:"url"`
		Strategy     string            `yaml:"strategy"`
		PageParam    string            `yaml:"page_param"`
		Params       map[string]string `yaml:"params"`
		RowSelectors []string          `yaml:"row_selectors"`
		UserAgent    string            `yaml:"user_agent"`
		Cookie       string            `yaml:"cookie"`
		Timeout      string            `yaml:"timeout"`
		Delay        string            `yaml:"delay"`
	} `yaml:"site"`
}

// File holds parsed config-file values. Zero fields mean "not set in the
// file"; the CLI layers flag values on top before validation.
type File struct {
	Start        time.Time
	End          time.Time
	URL          string
	Strategy     string
	PageParam    string
	Params       map[string]string
	RowSelectors []string
	UserAgent    string
	Cookie       string
	Timeout      time.Duration
	Delay        time.Duration
}

// LoadFile loads a YAML config file. A missing file is not an error and
// returns (nil, nil); a file that exists but cannot be parsed is an error.
func LoadFile(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	f := &File{
		URL:          raw.Site.URL,
		Strategy:     raw.Site.Strategy,
		PageParam:    raw.Site.PageParam,
		Params:       raw.Site.Params,
		RowSelectors: raw.Site.RowSelectors,
		UserAgent:    raw.Site.UserAgent,
		Cookie:       raw.Site.Cookie,
	}

	if raw.Range.Start != "" {
		if f.Start, err = ParseDate(raw.Range.Start); err != nil {
			return nil, fmt.Errorf("range.start: %w", err)
		}
	}
	if raw.Range.End != "" {
		if f.End, err = ParseDate(raw.Range.End); err != nil {
			return nil, fmt.Errorf("range.end: %w", err)
		}
	}
	if raw.Site.Timeout != "" {
		if f.Timeout, err = time.ParseDuration(raw.Site.Timeout); err != nil {
			return nil, fmt.Errorf("site.timeout: %w", err)
		}
	}
	if raw.Site.Delay != "" {
		if f.Delay, err = time.ParseDuration(raw.Site.Delay); err != nil {
			return nil, fmt.Errorf("site.delay: %w", err)
		}
	}

	return f, nil
}

// Apply copies the file's set values into cfg, leaving cfg's other fields
// untouched.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if !f.Start.IsZero() {
		cfg.Range.Start = f.Start
	}
	if !f.End.IsZero() {
		cfg.Range.End = f.End
	}
	if f.URL != "" {
		cfg.Site.BaseURL = f.URL
	}
	if f.Strategy != "" {
		cfg.Site.Strategy = f.Strategy
	}
	if f.PageParam != "" {
		cfg.Site.PageParam = f.PageParam
	}
	if len(f.Params) > 0 {
		cfg.Site.Params = f.Params
	}
	if len(f.RowSelectors) > 0 {
		cfg.Site.RowSelectors = f.RowSelectors
	}
	if f.UserAgent != "" {
		cfg.Site.UserAgent = f.UserAgent
	}
	if f.Cookie != "" {
		cfg.Site.Cookie = f.Cookie
	}
	if f.Timeout > 0 {
		cfg.Site.Timeout = f.Timeout
	}
	if f.Delay > 0 {
		cfg.Site.Delay = f.Delay
	}
}

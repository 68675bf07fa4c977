package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the job search agent.
type Config struct {
	Search          SearchConfig
	Sources         SourcesConfig
	DefaultSearches []string
	Filters         FilterConfig
	Output          OutputConfig
	Store           StoreConfig
}

// SearchConfig controls acquisition behaviour shared by all sources.
type SearchConfig struct {
	TimeFilterHours   int           // drop postings older than this many hours
	MaxResultsPerSite int           // cap on postings taken from one source
	RequestDelay      time.Duration // minimum gap between requests to the same source
}

// FeedConfig describes a single RSS/Atom job feed. The URL may contain a
// {query} placeholder replaced with the URL-escaped search term.
type FeedConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// RemoteOKConfig controls the RemoteOK JSON API source.
type RemoteOKConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SourcesConfig lists the acquisition sources to query.
type SourcesConfig struct {
	RSSFeeds []FeedConfig   `yaml:"rss_feeds"`
	RemoteOK RemoteOKConfig `yaml:"remoteok"`
}

// FilterConfig holds the exclusion rules applied to processed jobs.
// Keyword and experience-level terms are lowercased by Load.
type FilterConfig struct {
	ExcludeKeywords         []string
	ExcludeExperienceLevels []string
	SalaryMinimum           int
	SalaryMaximum           int
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format           string // "markdown", "html", or "both"
	OutputDir        string
	FilenameTemplate string // supports {timestamp} and {search_term}
	IncludeSummaries bool
	MaxSummaryLength int
}

// StoreConfig locates the cross-run fingerprint store.
type StoreConfig struct {
	Path      string
	Retention time.Duration // drop fingerprints first seen longer ago; zero keeps them forever
}

// rawConfig is used for YAML unmarshaling (snake_case fields, duration as
// string, nested salary_ranges block).
type rawConfig struct {
	Search          rawSearchConfig `yaml:"search_settings"`
	Sources         SourcesConfig   `yaml:"sources"`
	DefaultSearches []string        `yaml:"default_searches"`
	Filters         rawFilterConfig `yaml:"filters"`
	Output          rawOutputConfig `yaml:"output"`
	Store           rawStoreConfig  `yaml:"store"`
}

type rawStoreConfig struct {
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawSearchConfig struct {
	TimeFilterHours   int    `yaml:"time_filter_hours"`
	MaxResultsPerSite int    `yaml:"max_results_per_site"`
	RequestDelay      string `yaml:"request_delay"`
}

type rawFilterConfig struct {
	ExcludeKeywords         []string        `yaml:"exclude_keywords"`
	ExcludeExperienceLevels []string        `yaml:"exclude_experience_levels"`
	SalaryRanges            rawSalaryRanges `yaml:"salary_ranges"`
}

type rawSalaryRanges struct {
	Minimum int  `yaml:"minimum"`
	Maximum *int `yaml:"maximum"`
}

type rawOutputConfig struct {
	Format           string `yaml:"format"`
	OutputDir        string `yaml:"output_dir"`
	FilenameTemplate string `yaml:"filename_template"`
	IncludeSummaries *bool  `yaml:"include_summaries"`
	MaxSummaryLength int    `yaml:"max_summary_length"`
}

// Load reads and parses the YAML config file at path, applies defaults,
// validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	requestDelay := 2 * time.Second
	if raw.Search.RequestDelay != "" {
		requestDelay, err = time.ParseDuration(raw.Search.RequestDelay)
		if err != nil {
			return nil, fmt.Errorf("parse search_settings.request_delay %q: %w", raw.Search.RequestDelay, err)
		}
	}

	timeFilterHours := raw.Search.TimeFilterHours
	if timeFilterHours == 0 {
		timeFilterHours = 24
	}
	maxResults := raw.Search.MaxResultsPerSite
	if maxResults == 0 {
		maxResults = 50
	}

	salaryMax := 1_000_000
	if raw.Filters.SalaryRanges.Maximum != nil {
		salaryMax = *raw.Filters.SalaryRanges.Maximum
	}

	format := raw.Output.Format
	if format == "" {
		format = "both"
	}
	outputDir := raw.Output.OutputDir
	if outputDir == "" {
		outputDir = "./reports"
	}
	filenameTemplate := raw.Output.FilenameTemplate
	if filenameTemplate == "" {
		filenameTemplate = "job_search_{timestamp}_{search_term}"
	}
	includeSummaries := true
	if raw.Output.IncludeSummaries != nil {
		includeSummaries = *raw.Output.IncludeSummaries
	}
	maxSummaryLength := raw.Output.MaxSummaryLength
	if maxSummaryLength == 0 {
		maxSummaryLength = 300
	}

	storePath := raw.Store.Path
	if storePath == "" {
		storePath = "jobs.db"
	}
	storeRetention := 90 * 24 * time.Hour
	if raw.Store.Retention != "" {
		storeRetention, err = time.ParseDuration(raw.Store.Retention)
		if err != nil {
			return nil, fmt.Errorf("parse store.retention %q: %w", raw.Store.Retention, err)
		}
	}

	cfg := &Config{
		Search: SearchConfig{
			TimeFilterHours:   timeFilterHours,
			MaxResultsPerSite: maxResults,
			RequestDelay:      requestDelay,
		},
		Sources:         raw.Sources,
		DefaultSearches: raw.DefaultSearches,
		Filters: FilterConfig{
			ExcludeKeywords:         lowerAll(raw.Filters.ExcludeKeywords),
			ExcludeExperienceLevels: lowerAll(raw.Filters.ExcludeExperienceLevels),
			SalaryMinimum:           raw.Filters.SalaryRanges.Minimum,
			SalaryMaximum:           salaryMax,
		},
		Output: OutputConfig{
			Format:           format,
			OutputDir:        outputDir,
			FilenameTemplate: filenameTemplate,
			IncludeSummaries: includeSummaries,
			MaxSummaryLength: maxSummaryLength,
		},
		Store: StoreConfig{Path: storePath, Retention: storeRetention},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// EnabledSourceCount returns how many sources would actually be queried.
func (c *Config) EnabledSourceCount() int {
	n := 0
	for _, f := range c.Sources.RSSFeeds {
		if f.Enabled {
			n++
		}
	}
	if c.Sources.RemoteOK.Enabled {
		n++
	}
	return n
}

func validate(cfg *Config) error {
	if cfg.Output.MaxSummaryLength <= 0 {
		return fmt.Errorf("output.max_summary_length must be positive, got %d", cfg.Output.MaxSummaryLength)
	}
	switch cfg.Output.Format {
	case "markdown", "html", "both":
	default:
		return fmt.Errorf("output.format must be markdown, html, or both, got %q", cfg.Output.Format)
	}
	if cfg.Filters.SalaryMinimum > cfg.Filters.SalaryMaximum {
		return fmt.Errorf("filters.salary_ranges: minimum %d exceeds maximum %d",
			cfg.Filters.SalaryMinimum, cfg.Filters.SalaryMaximum)
	}
	if cfg.Search.RequestDelay < 0 {
		return fmt.Errorf("search_settings.request_delay must not be negative, got %v", cfg.Search.RequestDelay)
	}
	if cfg.Store.Retention < 0 {
		return fmt.Errorf("store.retention must not be negative, got %v", cfg.Store.Retention)
	}
	for _, f := range cfg.Sources.RSSFeeds {
		if f.Enabled && f.URL == "" {
			return fmt.Errorf("sources.rss_feeds: feed %q has no url", f.Name)
		}
	}
	if cfg.EnabledSourceCount() == 0 {
		return fmt.Errorf("no sources enabled")
	}
	return nil
}

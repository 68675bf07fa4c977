package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
search_settings:
  time_filter_hours: 48
  max_results_per_site: 25
  request_delay: 3s
sources:
  rss_feeds:
    - name: weworkremotely.com
      url: "https://weworkremotely.com/remote-jobs.rss"
      enabled: true
  remoteok:
    enabled: true
default_searches:
  - software engineer
filters:
  exclude_keywords:
    - Unpaid
    - commission only
  exclude_experience_levels:
    - Senior
  salary_ranges:
    minimum: 60000
    maximum: 200000
output:
  format: markdown
  output_dir: ./out
  max_summary_length: 150
store:
  path: seen.db
  retention: 720h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.TimeFilterHours != 48 || cfg.Search.MaxResultsPerSite != 25 {
		t.Errorf("Search = %+v", cfg.Search)
	}
	if cfg.Search.RequestDelay != 3*time.Second {
		t.Errorf("RequestDelay = %v, want 3s", cfg.Search.RequestDelay)
	}
	if len(cfg.Sources.RSSFeeds) != 1 || cfg.Sources.RSSFeeds[0].Name != "weworkremotely.com" {
		t.Errorf("RSSFeeds = %+v", cfg.Sources.RSSFeeds)
	}
	if !cfg.Sources.RemoteOK.Enabled {
		t.Error("RemoteOK should be enabled")
	}
	if len(cfg.DefaultSearches) != 1 || cfg.DefaultSearches[0] != "software engineer" {
		t.Errorf("DefaultSearches = %v", cfg.DefaultSearches)
	}
	if cfg.Filters.SalaryMinimum != 60000 || cfg.Filters.SalaryMaximum != 200000 {
		t.Errorf("Filters = %+v", cfg.Filters)
	}
	if cfg.Output.Format != "markdown" || cfg.Output.OutputDir != "./out" || cfg.Output.MaxSummaryLength != 150 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Store.Path != "seen.db" {
		t.Errorf("Store.Path = %q, want seen.db", cfg.Store.Path)
	}
	if cfg.Store.Retention != 720*time.Hour {
		t.Errorf("Store.Retention = %v, want 720h", cfg.Store.Retention)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.TimeFilterHours != 24 {
		t.Errorf("TimeFilterHours = %d, want default 24", cfg.Search.TimeFilterHours)
	}
	if cfg.Search.MaxResultsPerSite != 50 {
		t.Errorf("MaxResultsPerSite = %d, want default 50", cfg.Search.MaxResultsPerSite)
	}
	if cfg.Search.RequestDelay != 2*time.Second {
		t.Errorf("RequestDelay = %v, want default 2s", cfg.Search.RequestDelay)
	}
	if cfg.Filters.SalaryMinimum != 0 || cfg.Filters.SalaryMaximum != 1_000_000 {
		t.Errorf("salary band = [%d, %d], want [0, 1000000]", cfg.Filters.SalaryMinimum, cfg.Filters.SalaryMaximum)
	}
	if cfg.Output.Format != "both" {
		t.Errorf("Format = %q, want default both", cfg.Output.Format)
	}
	if cfg.Output.OutputDir != "./reports" {
		t.Errorf("OutputDir = %q, want default ./reports", cfg.Output.OutputDir)
	}
	if cfg.Output.FilenameTemplate != "job_search_{timestamp}_{search_term}" {
		t.Errorf("FilenameTemplate = %q", cfg.Output.FilenameTemplate)
	}
	if !cfg.Output.IncludeSummaries {
		t.Error("IncludeSummaries should default to true")
	}
	if cfg.Output.MaxSummaryLength != 300 {
		t.Errorf("MaxSummaryLength = %d, want default 300", cfg.Output.MaxSummaryLength)
	}
	if cfg.Store.Path != "jobs.db" {
		t.Errorf("Store.Path = %q, want default jobs.db", cfg.Store.Path)
	}
	if cfg.Store.Retention != 90*24*time.Hour {
		t.Errorf("Store.Retention = %v, want default 90 days", cfg.Store.Retention)
	}
}

func TestLoad_LowercasesFilterTerms(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
filters:
  exclude_keywords:
    - "  Unpaid "
    - COMMISSION ONLY
  exclude_experience_levels:
    - Senior
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Filters.ExcludeKeywords) != 2 ||
		cfg.Filters.ExcludeKeywords[0] != "unpaid" ||
		cfg.Filters.ExcludeKeywords[1] != "commission only" {
		t.Errorf("ExcludeKeywords = %v", cfg.Filters.ExcludeKeywords)
	}
	if len(cfg.Filters.ExcludeExperienceLevels) != 1 || cfg.Filters.ExcludeExperienceLevels[0] != "senior" {
		t.Errorf("ExcludeExperienceLevels = %v", cfg.Filters.ExcludeExperienceLevels)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("JOBS_DB_PATH", "/tmp/custom.db")
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
store:
  path: ${JOBS_DB_PATH}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Path != "/tmp/custom.db" {
		t.Errorf("Store.Path = %q, want expanded env var", cfg.Store.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "default_searches: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_InvalidRequestDelay(t *testing.T) {
	path := writeConfig(t, `
search_settings:
  request_delay: quickly
sources:
  remoteok:
    enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable request_delay")
	}
}

func TestLoad_InvalidRetention(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
store:
  retention: forever
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable store.retention")
	}
}

func TestLoad_NegativeRetention(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
store:
  retention: -24h
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for negative store.retention")
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
output:
  format: pdf
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for unknown output format")
	}
}

func TestLoad_InvertedSalaryBand(t *testing.T) {
	path := writeConfig(t, `
sources:
  remoteok:
    enabled: true
filters:
  salary_ranges:
    minimum: 500000
    maximum: 100000
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error when salary minimum exceeds maximum")
	}
}

func TestLoad_EnabledFeedWithoutURL(t *testing.T) {
	path := writeConfig(t, `
sources:
  rss_feeds:
    - name: broken-feed
      enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for enabled feed without url")
	}
}

func TestLoad_NoEnabledSources(t *testing.T) {
	path := writeConfig(t, `
sources:
  rss_feeds:
    - name: weworkremotely.com
      url: "https://weworkremotely.com/remote-jobs.rss"
      enabled: false
  remoteok:
    enabled: false
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error when no source is enabled")
	}
}

func TestEnabledSourceCount(t *testing.T) {
	cfg := &Config{
		Sources: SourcesConfig{
			RSSFeeds: []FeedConfig{
				{Name: "a", URL: "https://a.example/rss", Enabled: true},
				{Name: "b", URL: "https://b.example/rss", Enabled: false},
			},
			RemoteOK: RemoteOKConfig{Enabled: true},
		},
	}
	if got := cfg.EnabledSourceCount(); got != 2 {
		t.Errorf("EnabledSourceCount = %d, want 2", got)
	}
}

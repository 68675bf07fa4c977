package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/ratelimit"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/retry"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/source"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsearchaide",
	Short: "Remote job search, filtered and deduplicated",
	Long:  "Jobsearchaide searches remote job boards, filters postings against your criteria, and writes reports of what it finds.",
	// Default to `search` so that `jobsearchaide` with no args runs a search
	// using the configured default terms.
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSEARCHAIDE_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSEARCHAIDE_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSEARCHAIDE_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// buildSources constructs every enabled source, each wrapped with retries and
// the shared per-source rate limiter.
func buildSources(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.Source {
	limiter := ratelimit.NewSourceRateLimiter(cfg.Search.RequestDelay)
	maxAge := time.Duration(cfg.Search.TimeFilterHours) * time.Hour

	var sources []model.Source
	for _, feed := range cfg.Sources.RSSFeeds {
		if !feed.Enabled {
			continue
		}
		sources = append(sources, decorate(source.NewFeedSource(feed.Name, feed.URL, httpClient, maxAge), limiter, logger))
		logger.Info("registered source", "name", feed.Name, "kind", "rss")
	}
	if cfg.Sources.RemoteOK.Enabled {
		sources = append(sources, decorate(source.NewRemoteOKSource(httpClient, maxAge), limiter, logger))
		logger.Info("registered source", "name", "remoteok.io", "kind", "api")
	}
	return sources
}

func decorate(src model.Source, limiter *ratelimit.SourceRateLimiter, logger *slog.Logger) model.Source {
	return ratelimit.NewRateLimitedSource(retry.NewRetrySource(src, 2, 5*time.Second, logger), limiter)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/process"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/retry"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/review"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/source"
)

var reviewCmd = &cobra.Command{
	Use:   "review [term]",
	Short: "Browse filter decisions interactively (TUI)",
	Long:  "Shows the source picker TUI, then launches the split-pane review of accepted and rejected jobs. Nothing is written to the fingerprint store.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	term := ""
	if len(args) > 0 {
		term = args[0]
	} else if len(cfg.DefaultSearches) > 0 {
		term = cfg.DefaultSearches[0]
	}
	if term == "" {
		fmt.Fprintln(os.Stderr, "no search term given and no default_searches configured")
		os.Exit(1)
	}

	// Review mode runs a TUI, so any log output before the alt-screen starts
	// corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	items := pickerItems(cfg)
	if len(items) == 0 {
		fmt.Println("No enabled sources in config.")
		return nil
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	maxAge := time.Duration(cfg.Search.TimeFilterHours) * time.Hour

	for {
		choice, err := review.RunSourcePicker(items)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if choice < 0 {
			return nil
		}
		item := items[choice]

		var src model.Source
		if item.Kind == "api" {
			src = source.NewRemoteOKSource(httpClient, maxAge)
		} else {
			src = feedSourceByName(cfg, item.Name, httpClient, maxAge)
		}
		src = retry.NewRetrySource(src, 2, 5*time.Second, silentLogger)

		result, err := review.RunLoader(item.Name, term, func(ctx context.Context) (review.Result, error) {
			return evaluateSource(ctx, src, term, cfg, silentLogger)
		})
		if err != nil {
			fmt.Printf("Error fetching jobs: %v\n", err)
			continue
		}

		wantQuit, err := review.RunReviewTUI(result)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: loop, back to the picker
	}
}

// evaluateSource fetches one source and runs every posting through a fresh
// pipeline, keeping rejected jobs alongside their filter reason.
func evaluateSource(ctx context.Context, src model.Source, term string, cfg *config.Config, logger *slog.Logger) (review.Result, error) {
	postings, err := src.Search(ctx, term)
	if err != nil {
		return review.Result{}, err
	}
	if len(postings) > cfg.Search.MaxResultsPerSite {
		postings = postings[:cfg.Search.MaxResultsPerSite]
	}

	pipeline := process.NewPipeline(cfg.Filters, cfg.Output.MaxSummaryLength, logger)

	var result review.Result
	for _, rp := range postings {
		job, reason, err := pipeline.Evaluate(rp)
		if err != nil {
			continue
		}
		if reason == "" {
			result.Accepted = append(result.Accepted, job)
		} else {
			result.Rejected = append(result.Rejected, review.RejectedJob{Job: job, Reason: reason})
		}
	}
	return result, nil
}

func pickerItems(cfg *config.Config) []review.PickerItem {
	var items []review.PickerItem
	for _, feed := range cfg.Sources.RSSFeeds {
		if feed.Enabled {
			items = append(items, review.PickerItem{Name: feed.Name, Kind: "rss"})
		}
	}
	if cfg.Sources.RemoteOK.Enabled {
		items = append(items, review.PickerItem{Name: "remoteok.io", Kind: "api"})
	}
	return items
}

func feedSourceByName(cfg *config.Config, name string, httpClient *http.Client, maxAge time.Duration) model.Source {
	for _, feed := range cfg.Sources.RSSFeeds {
		if feed.Name == name {
			return source.NewFeedSource(feed.Name, feed.URL, httpClient, maxAge)
		}
	}
	// Picker items are built from the same config, so this is unreachable.
	return source.NewFeedSource(name, "", httpClient, maxAge)
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/process"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/report"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/store"
)

var (
	dryRun     bool
	formatFlag string
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search job boards and write a report",
	Long:  "Searches every enabled source for the given terms (or the configured default searches), filters and deduplicates the results, and writes reports.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the run summary without persisting fingerprints or writing report files")
	searchCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "override the configured report format (markdown, html, both)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	terms := args
	if len(terms) == 0 {
		terms = cfg.DefaultSearches
	}
	if len(terms) == 0 {
		logger.Error("no search terms given and no default_searches configured")
		os.Exit(1)
	}

	logger.Info("config loaded",
		"terms", terms,
		"sources", cfg.EnabledSourceCount(),
		"time_filter_hours", cfg.Search.TimeFilterHours,
		"request_delay", cfg.Search.RequestDelay.String(),
	)

	// In dry-run mode, use a NopStore so nothing is persisted.
	var fpStore model.FingerprintStore
	if dryRun {
		logger.Info("dry-run mode enabled, no fingerprints will be recorded")
		fpStore = store.NewNopStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		fpStore = sqlStore
	}

	pipeline := process.NewPipeline(cfg.Filters, cfg.Output.MaxSummaryLength, logger)
	known, err := fpStore.LoadAll()
	if err != nil {
		logger.Error("failed to load known fingerprints", "error", err)
		os.Exit(1)
	}
	pipeline.Seed(known)
	logger.Info("pipeline seeded", "known_fingerprints", len(known))

	httpClient := &http.Client{Timeout: 30 * time.Second}
	sources := buildSources(cfg, httpClient, logger)
	if len(sources) == 0 {
		logger.Error("no sources enabled")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var raw []model.RawPosting
	for _, term := range terms {
		for _, src := range sources {
			postings, err := src.Search(ctx, term)
			if err != nil {
				logger.Error("search failed", "source", src.Name(), "term", term, "error", err)
				continue
			}
			if len(postings) > cfg.Search.MaxResultsPerSite {
				postings = postings[:cfg.Search.MaxResultsPerSite]
			}
			logger.Info("source searched", "source", src.Name(), "term", term, "postings", len(postings))
			raw = append(raw, postings...)
		}
	}

	jobs, skipped := pipeline.Process(raw)
	logger.Info("pipeline complete",
		"fetched", len(raw),
		"accepted", len(jobs),
		"skipped", skipped,
	)

	for _, job := range jobs {
		if err := fpStore.MarkSeen(job.ID); err != nil {
			logger.Error("failed to record fingerprint", "fingerprint", job.ID, "error", err)
		}
	}

	// Expire fingerprints past the retention window so the store does not
	// grow without bound.
	if cfg.Store.Retention > 0 {
		if err := fpStore.Cleanup(cfg.Store.Retention); err != nil {
			logger.Error("failed to clean up old fingerprints", "error", err)
		}
	}

	if dryRun {
		logSummary(logger, jobs)
		logger.Info("dry-run complete, no reports written")
		return nil
	}

	outCfg := cfg.Output
	if formatFlag != "" {
		outCfg.Format = formatFlag
	}
	files, err := report.NewGenerator(outCfg, logger).Generate(jobs, terms)
	if err != nil {
		logger.Error("failed to generate reports", "error", err)
		os.Exit(1)
	}

	logSummary(logger, jobs)
	for format, path := range files {
		logger.Info("report written", "format", format, "path", path)
	}
	return nil
}

func logSummary(logger *slog.Logger, jobs []model.ProcessedJob) {
	companies := make(map[string]struct{})
	totalRelevance := 0.0
	for _, job := range jobs {
		if job.Company != "" {
			companies[job.Company] = struct{}{}
		}
		totalRelevance += job.RelevanceScore
	}
	avg := 0.0
	if len(jobs) > 0 {
		avg = totalRelevance / float64(len(jobs))
	}
	logger.Info("run summary",
		"jobs", len(jobs),
		"unique_companies", len(companies),
		"avg_relevance", avg,
	)
}

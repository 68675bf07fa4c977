// Package process implements the job normalization pipeline: field
// extraction, identity resolution, scoring and remote verification, and the
// filter decision, over raw postings collected from any source.
package process

import (
	"log/slog"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

// Pipeline turns raw postings into canonical ProcessedJobs with stable
// fingerprints, deduplicating against an instance-owned seen-set.
//
// The pipeline is a pure synchronous transformation and owns its seen-set
// exclusively: it is not safe for concurrent use by multiple goroutines.
// The seen-set lives for the lifetime of the instance; callers wanting
// cross-run dedup seed it via Seed, callers wanting a fresh scope call
// Reset.
//
// Only accepted jobs enter the seen-set. A job rejected by the filter rules
// is evaluated fresh if resubmitted, e.g. in a later batch under different
// filters. This asymmetry is intentional, preserved from the system this
// pipeline replaces.
type Pipeline struct {
	filters    config.FilterConfig
	maxSummary int
	seen       map[string]struct{}
	logger     *slog.Logger
	now        func() time.Time // injectable for deterministic tests
}

// NewPipeline creates a pipeline with an empty seen-set.
func NewPipeline(filters config.FilterConfig, maxSummaryLength int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		filters:    filters,
		maxSummary: maxSummaryLength,
		seen:       make(map[string]struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Seed marks fingerprints as already seen, extending dedup scope across runs.
func (p *Pipeline) Seed(fingerprints []string) {
	for _, fp := range fingerprints {
		p.seen[fp] = struct{}{}
	}
}

// Reset clears the seen-set, starting a fresh deduplication scope.
func (p *Pipeline) Reset() {
	p.seen = make(map[string]struct{})
}

// SeenCount returns the number of distinct fingerprints recorded so far.
func (p *Pipeline) SeenCount() int {
	return len(p.seen)
}

// Process normalizes a batch of raw postings in input order and returns the
// accepted jobs plus the number of records skipped as unprocessable. Records
// whose fingerprint is already in the seen-set are silently dropped before
// scoring; records rejected by the filter rules are dropped without entering
// the seen-set. Individual bad records never fail the batch.
func (p *Pipeline) Process(raw []model.RawPosting) ([]model.ProcessedJob, int) {
	p.logger.Info("processing raw postings", "count", len(raw))

	var jobs []model.ProcessedJob
	skipped := 0

	for _, rp := range raw {
		job, err := p.buildJob(rp)
		if err != nil {
			skipped++
			p.logger.Warn("skipping unprocessable posting", "url", rp.URL, "error", err)
			continue
		}

		if _, dup := p.seen[job.ID]; dup {
			p.logger.Debug("duplicate posting dropped", "title", job.Title, "company", job.Company)
			continue
		}

		if keep, reason := shouldInclude(p.filters, job); !keep {
			p.logger.Debug("posting filtered out", "title", job.Title, "reason", reason)
			continue
		}

		jobs = append(jobs, job)
		p.seen[job.ID] = struct{}{}
	}

	p.logger.Info("processing complete",
		"accepted", len(jobs),
		"skipped", skipped,
		"seen_total", len(p.seen),
	)
	return jobs, skipped
}

// Evaluate normalizes a single posting without consulting or mutating the
// seen-set and reports the filter outcome. Used by review mode to show why a
// posting was accepted or rejected.
func (p *Pipeline) Evaluate(rp model.RawPosting) (model.ProcessedJob, string, error) {
	job, err := p.buildJob(rp)
	if err != nil {
		return model.ProcessedJob{}, "", err
	}
	_, reason := shouldInclude(p.filters, job)
	return job, reason, nil
}

// buildJob runs field extraction, identity resolution, and scoring on one
// raw posting. Missing optional fields are normal; the only fatal condition
// is a posting whose cleaned title is empty, because no deterministic
// identity can be built for it.
func (p *Pipeline) buildJob(rp model.RawPosting) (model.ProcessedJob, error) {
	title := cleanText(rp.Title)
	if title == "" {
		return model.ProcessedJob{}, errNoTitle
	}

	company := cleanText(rp.Company)
	location := cleanText(rp.Location)
	description := cleanText(rp.Description)
	if description == "" {
		description = cleanText(rp.Snippet)
	}
	salaryText := cleanText(rp.Salary)

	salaryMin, salaryMax := parseSalary(salaryText + " " + description)

	foundDate := rp.FoundDate
	if foundDate == "" {
		foundDate = p.now().Format(time.RFC3339)
	}

	return model.ProcessedJob{
		ID:             fingerprint(title, company, rp.URL),
		Title:          title,
		Company:        company,
		URL:            rp.URL,
		Location:       location,
		Salary:         salaryText,
		SalaryMin:      salaryMin,
		SalaryMax:      salaryMax,
		Description:    description,
		Summary:        generateSummary(description, p.maxSummary),
		Requirements:   extractRequirements(description),
		SourceSite:     rp.SourceSite,
		SearchTerm:     rp.SearchTerm,
		PostingDate:    rp.PostingDate,
		FoundDate:      foundDate,
		IsRemote:       verifyRemote(title, description, location),
		RelevanceScore: relevanceScore(rp.SearchTerm, title, description),
	}, nil
}

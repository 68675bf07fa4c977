// Package report renders accepted jobs into markdown and HTML files.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

// Generator writes job search reports to the configured output directory.
type Generator struct {
	out    config.OutputConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewGenerator(out config.OutputConfig, logger *slog.Logger) *Generator {
	return &Generator{
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// Generate renders the jobs in every configured format and returns a map of
// format name to written file path.
func (g *Generator) Generate(jobs []model.ProcessedJob, searchTerms []string) (map[string]string, error) {
	if err := os.MkdirAll(g.out.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	base := g.filenameBase(searchTerms)
	generated := make(map[string]string)

	if g.out.Format == "markdown" || g.out.Format == "both" {
		path := filepath.Join(g.out.OutputDir, base+".md")
		if err := os.WriteFile(path, []byte(g.renderMarkdown(jobs, searchTerms)), 0o644); err != nil {
			return nil, fmt.Errorf("writing markdown report: %w", err)
		}
		g.logger.Info("markdown report generated", "path", path)
		generated["markdown"] = path
	}

	if g.out.Format == "html" || g.out.Format == "both" {
		path := filepath.Join(g.out.OutputDir, base+".html")
		data, err := g.renderHTML(jobs, searchTerms)
		if err != nil {
			return nil, fmt.Errorf("rendering html report: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing html report: %w", err)
		}
		g.logger.Info("html report generated", "path", path)
		generated["html"] = path
	}

	return generated, nil
}

// filenameBase expands the filename template. The search-term slug is capped
// at 50 characters so long term lists stay filesystem-friendly.
func (g *Generator) filenameBase(searchTerms []string) string {
	termSlug := strings.Join(searchTerms, "_")
	termSlug = strings.ReplaceAll(termSlug, " ", "_")
	termSlug = strings.ReplaceAll(termSlug, "/", "_")
	if len(termSlug) > 50 {
		termSlug = termSlug[:50]
	}

	base := g.out.FilenameTemplate
	base = strings.ReplaceAll(base, "{timestamp}", g.now().Format("20060102_150405"))
	base = strings.ReplaceAll(base, "{search_term}", termSlug)
	return base
}

// siteGroup is one source site's jobs, sorted by descending relevance.
type siteGroup struct {
	Site string
	Jobs []model.ProcessedJob
}

// groupBySite buckets jobs per source site. Sites are ordered by descending
// job count (name breaks ties), jobs within a site by descending relevance.
func groupBySite(jobs []model.ProcessedJob) []siteGroup {
	buckets := make(map[string][]model.ProcessedJob)
	for _, job := range jobs {
		site := job.SourceSite
		if site == "" {
			site = "Unknown"
		}
		buckets[site] = append(buckets[site], job)
	}

	groups := make([]siteGroup, 0, len(buckets))
	for site, siteJobs := range buckets {
		sort.SliceStable(siteJobs, func(i, j int) bool {
			return siteJobs[i].RelevanceScore > siteJobs[j].RelevanceScore
		})
		groups = append(groups, siteGroup{Site: site, Jobs: siteJobs})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Jobs) != len(groups[j].Jobs) {
			return len(groups[i].Jobs) > len(groups[j].Jobs)
		}
		return groups[i].Site < groups[j].Site
	})
	return groups
}

type salaryStats struct {
	WithSalary int
	Min        int
	Max        int
	Avg        int
}

// salarySummary computes statistics over the mid-point of each job's salary
// band. Returns nil when no job carries a full band.
func salarySummary(jobs []model.ProcessedJob) *salaryStats {
	var midpoints []int
	for _, job := range jobs {
		if job.HasSalary() {
			midpoints = append(midpoints, (*job.SalaryMin+*job.SalaryMax)/2)
		}
	}
	if len(midpoints) == 0 {
		return nil
	}

	stats := &salaryStats{
		WithSalary: len(midpoints),
		Min:        midpoints[0],
		Max:        midpoints[0],
	}
	sum := 0
	for _, m := range midpoints {
		if m < stats.Min {
			stats.Min = m
		}
		if m > stats.Max {
			stats.Max = m
		}
		sum += m
	}
	stats.Avg = sum / len(midpoints)
	return stats
}

func uniqueCompanies(jobs []model.ProcessedJob) int {
	companies := make(map[string]struct{})
	for _, job := range jobs {
		if job.Company != "" {
			companies[job.Company] = struct{}{}
		}
	}
	return len(companies)
}

func averageRelevance(jobs []model.ProcessedJob) float64 {
	if len(jobs) == 0 {
		return 0
	}
	sum := 0.0
	for _, job := range jobs {
		sum += job.RelevanceScore
	}
	return sum / float64(len(jobs))
}

// formatDollars renders an amount as "$80,000".
func formatDollars(amount int) string {
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	b.WriteByte('$')
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}

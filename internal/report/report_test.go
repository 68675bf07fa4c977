package report

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func newTestGenerator(t *testing.T, format string) *Generator {
	t.Helper()
	g := NewGenerator(config.OutputConfig{
		Format:           format,
		OutputDir:        t.TempDir(),
		FilenameTemplate: "job_search_{timestamp}_{search_term}",
		IncludeSummaries: true,
		MaxSummaryLength: 300,
	}, discardLogger())
	g.now = func() time.Time {
		return time.Date(2026, 8, 25, 12, 30, 0, 0, time.UTC)
	}
	return g
}

func sampleJobs() []model.ProcessedJob {
	return []model.ProcessedJob{
		{
			Title:          "Senior Backend Engineer",
			Company:        "Acme Corp",
			URL:            "https://boards.example.com/jobs/12345",
			Location:       "Remote",
			Salary:         "$120,000 - $160,000",
			SalaryMin:      intPtr(120000),
			SalaryMax:      intPtr(160000),
			Summary:        "Build distributed systems.",
			Requirements:   "Go; Kubernetes",
			SourceSite:     "remoteok.io",
			RelevanceScore: 0.9,
		},
		{
			Title:          "Platform Engineer",
			Company:        "Beta Inc",
			URL:            "https://boards.example.com/jobs/67890",
			SourceSite:     "remoteok.io",
			RelevanceScore: 0.4,
		},
		{
			Title:          "Data Engineer",
			Company:        "Acme Corp",
			URL:            "https://example.org/jobs/1",
			SourceSite:     "weworkremotely.com",
			SalaryMin:      intPtr(80000),
			SalaryMax:      intPtr(100000),
			RelevanceScore: 0.7,
		},
	}
}

func TestFilenameBase(t *testing.T) {
	g := newTestGenerator(t, "markdown")

	got := g.filenameBase([]string{"software engineer", "golang/backend"})
	want := "job_search_20260825_123000_software_engineer_golang_backend"
	if got != want {
		t.Errorf("filenameBase = %q, want %q", got, want)
	}
}

func TestFilenameBaseCapsLongTerms(t *testing.T) {
	g := newTestGenerator(t, "markdown")

	long := strings.Repeat("engineer ", 20)
	got := g.filenameBase([]string{long})
	slug := strings.TrimPrefix(got, "job_search_20260825_123000_")
	if len(slug) != 50 {
		t.Errorf("term slug is %d chars, want capped at 50", len(slug))
	}
}

func TestGroupBySiteOrdering(t *testing.T) {
	groups := groupBySite(sampleJobs())

	if len(groups) != 2 {
		t.Fatalf("got %d site groups, want 2", len(groups))
	}
	// remoteok.io has 2 jobs and sorts first.
	if groups[0].Site != "remoteok.io" || len(groups[0].Jobs) != 2 {
		t.Errorf("first group = %s (%d jobs), want remoteok.io (2)", groups[0].Site, len(groups[0].Jobs))
	}
	// Within a site, highest relevance first.
	if groups[0].Jobs[0].Title != "Senior Backend Engineer" {
		t.Errorf("first job in group = %q, want highest relevance first", groups[0].Jobs[0].Title)
	}
}

func TestSalarySummary(t *testing.T) {
	stats := salarySummary(sampleJobs())
	if stats == nil {
		t.Fatal("expected salary stats, got nil")
	}
	if stats.WithSalary != 2 {
		t.Errorf("WithSalary = %d, want 2", stats.WithSalary)
	}
	// Midpoints are 140000 and 90000.
	if stats.Min != 90000 || stats.Max != 140000 || stats.Avg != 115000 {
		t.Errorf("stats = min %d max %d avg %d, want 90000/140000/115000", stats.Min, stats.Max, stats.Avg)
	}
}

func TestSalarySummaryNoBands(t *testing.T) {
	jobs := []model.ProcessedJob{{Title: "Engineer"}}
	if stats := salarySummary(jobs); stats != nil {
		t.Errorf("expected nil stats for jobs without salary bands, got %+v", stats)
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{500, "$500"},
		{80000, "$80,000"},
		{1250000, "$1,250,000"},
	}
	for _, tt := range tests {
		if got := formatDollars(tt.amount); got != tt.want {
			t.Errorf("formatDollars(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRenderMarkdownContent(t *testing.T) {
	g := newTestGenerator(t, "markdown")

	md := g.renderMarkdown(sampleJobs(), []string{"software engineer"})

	for _, want := range []string{
		"# Remote Job Search Report",
		"**Search Terms:** software engineer",
		"**Total Jobs Found:** 3",
		"- **Unique Companies:** 2",
		"## remoteok.io (2 jobs)",
		"### Senior Backend Engineer at **Acme Corp**",
		"**Summary:** Build distributed systems.",
		"**Key Requirements:** Go; Kubernetes",
		"- **Salary Range:** $90,000 - $140,000",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	g := newTestGenerator(t, "markdown")

	md := g.renderMarkdown(nil, []string{"software engineer"})
	if !strings.Contains(md, "No jobs found matching the search criteria.") {
		t.Error("empty report should say no jobs were found")
	}
}

func TestRenderMarkdownSummariesDisabled(t *testing.T) {
	g := newTestGenerator(t, "markdown")
	g.out.IncludeSummaries = false

	md := g.renderMarkdown(sampleJobs(), []string{"software engineer"})
	if strings.Contains(md, "**Summary:** Build distributed systems.") {
		t.Error("summaries should be omitted when include_summaries is off")
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	g := newTestGenerator(t, "html")

	jobs := []model.ProcessedJob{{
		Title:          "Engineer <script>alert(1)</script>",
		URL:            "https://example.org/jobs/1",
		SourceSite:     "example.org",
		RelevanceScore: 0.5,
	}}
	out, err := g.renderHTML(jobs, []string{"engineer"})
	if err != nil {
		t.Fatalf("renderHTML: %v", err)
	}
	if strings.Contains(string(out), "<script>alert(1)</script>") {
		t.Error("job fields must be HTML-escaped")
	}
}

func TestGenerateBothFormats(t *testing.T) {
	g := newTestGenerator(t, "both")

	files, err := g.Generate(sampleJobs(), []string{"software engineer"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("generated %d files, want 2", len(files))
	}
	for format, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s report: %v", format, err)
		}
		if len(data) == 0 {
			t.Errorf("%s report at %s is empty", format, path)
		}
	}
}

func TestGenerateMarkdownOnly(t *testing.T) {
	g := newTestGenerator(t, "markdown")

	files, err := g.Generate(sampleJobs(), []string{"software engineer"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("generated %d files, want 1", len(files))
	}
	if _, ok := files["markdown"]; !ok {
		t.Error("expected a markdown entry in the generated file map")
	}
}

package report

import (
	"fmt"
	"strings"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

// renderMarkdown builds the full markdown report: header, summary statistics,
// jobs grouped by source site, footer.
func (g *Generator) renderMarkdown(jobs []model.ProcessedJob, searchTerms []string) string {
	var b strings.Builder

	now := g.now()
	fmt.Fprintf(&b, "# Remote Job Search Report\n\n")
	fmt.Fprintf(&b, "**Search Terms:** %s\n", strings.Join(searchTerms, ", "))
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Jobs Found:** %d\n\n---\n\n", len(jobs))

	g.writeSummarySection(&b, jobs)

	for _, group := range groupBySite(jobs) {
		fmt.Fprintf(&b, "\n## %s (%d jobs)\n\n", group.Site, len(group.Jobs))
		for _, job := range group.Jobs {
			g.writeJobMarkdown(&b, job)
		}
	}

	fmt.Fprintf(&b, "\n---\n\n*Generated on %s*\n", now.Format("2006-01-02 at 15:04:05"))
	return b.String()
}

func (g *Generator) writeSummarySection(b *strings.Builder, jobs []model.ProcessedJob) {
	if len(jobs) == 0 {
		b.WriteString("## Summary\n\nNo jobs found matching the search criteria.\n\n")
		return
	}

	groups := groupBySite(jobs)

	fmt.Fprintf(b, "## Summary\n\n")
	fmt.Fprintf(b, "- **Total Jobs:** %d\n", len(jobs))
	fmt.Fprintf(b, "- **Unique Companies:** %d\n", uniqueCompanies(jobs))
	fmt.Fprintf(b, "- **Average Relevance Score:** %.2f\n", averageRelevance(jobs))
	fmt.Fprintf(b, "- **Sites Searched:** %d\n\n", len(groups))

	b.WriteString("### Jobs by Site\n")
	for _, group := range groups {
		fmt.Fprintf(b, "- **%s**: %d jobs (avg relevance: %.2f)\n",
			group.Site, len(group.Jobs), averageRelevance(group.Jobs))
	}

	b.WriteString("\n### Salary Information\n")
	if stats := salarySummary(jobs); stats != nil {
		fmt.Fprintf(b, "- **Jobs with Salary Info:** %d out of %d\n", stats.WithSalary, len(jobs))
		fmt.Fprintf(b, "- **Salary Range:** %s - %s\n", formatDollars(stats.Min), formatDollars(stats.Max))
		fmt.Fprintf(b, "- **Average Salary:** %s\n", formatDollars(stats.Avg))
	} else {
		b.WriteString("- No salary information available\n")
	}
	b.WriteString("\n---\n\n")
}

func (g *Generator) writeJobMarkdown(b *strings.Builder, job model.ProcessedJob) {
	if job.Company != "" {
		fmt.Fprintf(b, "### %s at **%s**\n\n", job.Title, job.Company)
	} else {
		fmt.Fprintf(b, "### %s\n\n", job.Title)
	}

	fmt.Fprintf(b, "**[Apply Here](%s)**", job.URL)
	if job.Location != "" {
		fmt.Fprintf(b, " | **Location:** %s", job.Location)
	}
	if job.Salary != "" {
		fmt.Fprintf(b, " | **Salary:** %s", job.Salary)
	}
	fmt.Fprintf(b, " | **Relevance:** %.2f\n\n", job.RelevanceScore)

	if g.out.IncludeSummaries && job.Summary != "" {
		fmt.Fprintf(b, "**Summary:** %s\n\n", job.Summary)
	}
	if job.Requirements != "" {
		fmt.Fprintf(b, "**Key Requirements:** %s\n\n", job.Requirements)
	}
	b.WriteString("---\n\n")
}

package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Remote Job Search Report</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { border-bottom: 2px solid #336; padding-bottom: 0.3rem; }
h2 { color: #336; margin-top: 2rem; }
.job { border: 1px solid #ddd; border-radius: 6px; padding: 0.8rem 1rem; margin-bottom: 1rem; }
.job h3 { margin: 0 0 0.4rem; }
.meta { color: #555; font-size: 0.9rem; }
.summary li { margin: 0.2rem 0; }
footer { margin-top: 3rem; color: #888; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Remote Job Search Report</h1>
<p class="meta"><strong>Search Terms:</strong> {{.SearchTerms}} &middot; <strong>Generated:</strong> {{.Generated}} &middot; <strong>Total Jobs:</strong> {{.TotalJobs}}</p>

<h2>Summary</h2>
{{if .TotalJobs}}
<ul class="summary">
<li><strong>Unique Companies:</strong> {{.UniqueCompanies}}</li>
<li><strong>Average Relevance Score:</strong> {{.AvgRelevance}}</li>
<li><strong>Sites Searched:</strong> {{len .Sites}}</li>
{{if .Salary}}<li><strong>Jobs with Salary Info:</strong> {{.Salary.WithSalary}} of {{.TotalJobs}} (range {{.Salary.Range}}, avg {{.Salary.Avg}})</li>{{end}}
</ul>
{{else}}
<p>No jobs found matching the search criteria.</p>
{{end}}

{{range .Sites}}
<h2>{{.Site}} ({{len .Jobs}} jobs)</h2>
{{range .Jobs}}
<div class="job">
<h3>{{.Title}}{{if .Company}} at {{.Company}}{{end}}</h3>
<p class="meta"><a href="{{.URL}}">Apply Here</a>{{if .Location}} &middot; {{.Location}}{{end}}{{if .Salary}} &middot; {{.Salary}}{{end}} &middot; relevance {{.Relevance}}</p>
{{if .Summary}}<p><strong>Summary:</strong> {{.Summary}}</p>{{end}}
{{if .Requirements}}<p><strong>Key Requirements:</strong> {{.Requirements}}</p>{{end}}
</div>
{{end}}
{{end}}

<footer>Generated on {{.Generated}}</footer>
</body>
</html>
`))

type htmlJob struct {
	Title        string
	Company      string
	URL          string
	Location     string
	Salary       string
	Relevance    string
	Summary      string
	Requirements string
}

type htmlSite struct {
	Site string
	Jobs []htmlJob
}

type htmlSalary struct {
	WithSalary int
	Range      string
	Avg        string
}

type htmlData struct {
	SearchTerms     string
	Generated       string
	TotalJobs       int
	UniqueCompanies int
	AvgRelevance    string
	Salary          *htmlSalary
	Sites           []htmlSite
}

// renderHTML renders the same report structure as the markdown output via
// html/template, so values are escaped for the browser.
func (g *Generator) renderHTML(jobs []model.ProcessedJob, searchTerms []string) ([]byte, error) {
	data := htmlData{
		SearchTerms:     strings.Join(searchTerms, ", "),
		Generated:       g.now().Format("2006-01-02 15:04:05"),
		TotalJobs:       len(jobs),
		UniqueCompanies: uniqueCompanies(jobs),
		AvgRelevance:    fmt.Sprintf("%.2f", averageRelevance(jobs)),
	}
	if stats := salarySummary(jobs); stats != nil {
		data.Salary = &htmlSalary{
			WithSalary: stats.WithSalary,
			Range:      formatDollars(stats.Min) + " - " + formatDollars(stats.Max),
			Avg:        formatDollars(stats.Avg),
		}
	}

	for _, group := range groupBySite(jobs) {
		site := htmlSite{Site: group.Site}
		for _, job := range group.Jobs {
			hj := htmlJob{
				Title:        job.Title,
				Company:      job.Company,
				URL:          job.URL,
				Location:     job.Location,
				Salary:       job.Salary,
				Relevance:    fmt.Sprintf("%.2f", job.RelevanceScore),
				Requirements: job.Requirements,
			}
			if g.out.IncludeSummaries {
				hj.Summary = job.Summary
			}
			site.Jobs = append(site.Jobs, hj)
		}
		data.Sites = append(data.Sites, site)
	}

	var buf bytes.Buffer
	if err := htmlReport.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

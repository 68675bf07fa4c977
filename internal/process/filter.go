package process

import (
	"strings"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/config"
	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

// Reject reasons reported by shouldInclude, in rule order.
const (
	RejectKeyword    = "keyword"
	RejectExperience = "experience_level"
	RejectSalary     = "salary"
	RejectNotRemote  = "not_remote"
)

// shouldInclude applies the configured exclusion rules to a processed job.
// Rules run in a fixed order and short-circuit at the first failure; the
// reason identifies which rule rejected the job (empty on accept). The order
// only matters for diagnostics, the rules are otherwise independent.
func shouldInclude(filters config.FilterConfig, job model.ProcessedJob) (keep bool, reason string) {
	text := strings.ToLower(job.Title + " " + job.Description)

	for _, keyword := range filters.ExcludeKeywords {
		if strings.Contains(text, keyword) {
			return false, RejectKeyword
		}
	}

	for _, level := range filters.ExcludeExperienceLevels {
		if strings.Contains(text, level) {
			return false, RejectExperience
		}
	}

	// Salary check only applies when a band was extracted: the job is
	// rejected when its band does not overlap the configured one.
	if job.HasSalary() {
		if *job.SalaryMax < filters.SalaryMinimum || *job.SalaryMin > filters.SalaryMaximum {
			return false, RejectSalary
		}
	}

	if !job.IsRemote {
		return false, RejectNotRemote
	}

	return true, ""
}

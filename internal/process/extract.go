package process

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlEntityRegex = regexp.MustCompile(`&[a-zA-Z]+;`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]+>`)
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
)

// cleanText normalizes raw field text: HTML entities and tag markup are
// replaced with a space, whitespace runs collapse to single spaces, and the
// result is trimmed.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = htmlEntityRegex.ReplaceAllString(text, " ")
	text = htmlTagRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Plausible annual-salary band in USD. Values outside it are treated as
// non-salary numbers (years, zip codes, revenue figures).
const (
	salaryBandMin = 10_000
	salaryBandMax = 1_000_000
)

// salaryRule pairs a pattern with how its captures are interpreted.
// Rules are tried in order; the first in-band match wins.
type salaryRule struct {
	pattern    *regexp.Regexp
	multiplier int  // 1000 for "k" notation
	isRange    bool // two captures vs one
}

var salaryRules = []salaryRule{
	// $100,000 - $150,000 (second dollar sign optional)
	{regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)(?:\.\d{2})?\s*(?:-|–|—|to)\s*\$?(\d{1,3}(?:,\d{3})*)(?:\.\d{2})?`), 1, true},
	// 100,000 - 150,000 USD / per year / annually
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*(?:-|–|—|to)\s*(\d{1,3}(?:,\d{3})*)\s*(?:USD|dollars?|per\s+year|annually)`), 1, true},
	// $100,000 per year
	{regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)(?:\.\d{2})?\s*(?:per\s+year|annually|/year|yr)`), 1, false},
	// 100k - 150k
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*k\s*(?:-|–|—|to)\s*(\d{1,3}(?:,\d{3})*)\s*k`), 1000, true},
}

// parseSalary scans text for an annual USD salary or salary range. It tries
// each rule in priority order and returns the first match whose values fall
// inside the plausible band; a single amount yields min == max. Both returns
// are nil when nothing in-band is found; that is a normal outcome, not an
// error.
func parseSalary(text string) (*int, *int) {
	if text == "" {
		return nil, nil
	}

	for _, rule := range salaryRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			min, ok := parseAmount(m[1], rule.multiplier)
			if !ok {
				continue
			}
			if !rule.isRange {
				v := min
				return &v, &v
			}
			max, ok := parseAmount(m[2], rule.multiplier)
			if !ok {
				continue
			}
			lo, hi := min, max
			return &lo, &hi
		}
	}
	return nil, nil
}

func parseAmount(s string, multiplier int) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	n *= multiplier
	if n < salaryBandMin || n > salaryBandMax {
		return 0, false
	}
	return n, true
}

// Words that mark a sentence as informative enough for the summary.
var importantKeywords = []string{
	"responsible", "role", "position", "seeking", "looking", "opportunity",
	"experience", "skills", "requirements", "qualifications", "team",
}

// generateSummary builds a short summary from the first sentences of the
// description. Sentences containing an importance keyword are preferred; if
// none has matched yet the first sentence longer than 20 characters is taken
// as a fallback. Accumulation stops once the joined text exceeds maxLen, and
// the result is hard-truncated at a word boundary with an ellipsis.
func generateSummary(description string, maxLen int) string {
	if description == "" {
		return ""
	}

	sentences := sentenceSplit.Split(description, -1)
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}

	var picked []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		if containsAny(strings.ToLower(sentence), importantKeywords) {
			picked = append(picked, sentence)
		} else if len(picked) == 0 {
			picked = append(picked, sentence)
		}
		if len(strings.Join(picked, " ")) > maxLen {
			break
		}
	}

	summary := strings.Join(picked, " ")
	if r := []rune(summary); len(r) > maxLen {
		cut := string(r[:maxLen])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		summary = cut + "..."
	}
	return summary
}

var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:requirements?|qualifications?|skills?)[:\-\s]*([^.]*(?:\.[^.]*){0,3})`),
	regexp.MustCompile(`(?is)(?:you\s+(?:will\s+)?(?:need|have|bring))[:\-\s]*([^.]*(?:\.[^.]*){0,2})`),
	regexp.MustCompile(`(?is)(?:must\s+have|required)[:\-\s]*([^.]*(?:\.[^.]*){0,2})`),
}

// extractRequirements pulls requirement snippets out of the description by
// matching the three anchor-phrase patterns in order, each capturing a few
// trailing sentences of context. Captures shorter than 10 characters are
// discarded; at most the first 3 are kept, joined with "; ".
func extractRequirements(description string) string {
	if description == "" {
		return ""
	}

	var requirements []string
	for _, pattern := range requirementPatterns {
		for _, m := range pattern.FindAllStringSubmatch(description, -1) {
			req := strings.TrimSpace(m[1])
			if len(req) > 10 {
				requirements = append(requirements, req)
			}
		}
	}

	if len(requirements) > 3 {
		requirements = requirements[:3]
	}
	return strings.Join(requirements, "; ")
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

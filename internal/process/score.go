package process

import (
	"slices"
	"strings"
)

// relevanceScore measures how strongly a posting matches its originating
// search term, in [0.0, 1.0]. Three weighted components, each independently
// capped: full-term substring in the title (+0.5), fraction of term words
// appearing as whole words in the title (×0.3), fraction of term words
// appearing anywhere in title+description (×0.2). A posting with no search
// term scores 0.
func relevanceScore(searchTerm, title, description string) float64 {
	searchTerm = strings.ToLower(searchTerm)
	searchWords := strings.Fields(searchTerm)
	// A term with no words (empty or all whitespace) counts as absent.
	if len(searchWords) == 0 {
		return 0.0
	}

	titleLower := strings.ToLower(title)
	combined := titleLower + " " + strings.ToLower(description)

	score := 0.0
	if strings.Contains(titleLower, searchTerm) {
		score += 0.5
	}

	titleWords := strings.Fields(titleLower)

	titleMatches := 0
	combinedMatches := 0
	for _, word := range searchWords {
		if slices.Contains(titleWords, word) {
			titleMatches++
		}
		if strings.Contains(combined, word) {
			combinedMatches++
		}
	}
	score += float64(titleMatches) / float64(len(searchWords)) * 0.3
	score += float64(combinedMatches) / float64(len(searchWords)) * 0.2

	return min(score, 1.0)
}

// Positive indicators that a role is genuinely remote.
var remoteIndicators = []string{
	"remote", "telecommute", "work from home", "wfh", "distributed",
	"virtual", "anywhere", "location independent",
}

// Signals that a "remote" label is qualified or misleading.
var nonRemoteIndicators = []string{
	"hybrid", "on-site", "in-person", "office", "local", "commute",
	"relocation", "visa sponsorship",
}

// verifyRemote returns true only when the concatenated title, description,
// and location contain at least one remote indicator and no counter-signal.
// A negative indicator always overrides a positive one.
func verifyRemote(title, description, location string) bool {
	text := strings.ToLower(title + " " + description + " " + location)

	hasRemote := containsAny(text, remoteIndicators)
	hasNonRemote := containsAny(text, nonRemoteIndicators)

	return hasRemote && !hasNonRemote
}

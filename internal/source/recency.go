package source

import "time"

// Layouts seen in the wild on job feeds, tried in order.
var postingDateLayouts = []string{
	time.RFC1123Z, // RSS pubDate
	time.RFC1123,
	time.RFC3339, // Atom published, RemoteOK date
	"2006-01-02",
}

// isRecent reports whether a posting date falls within the freshness window.
// Postings with no date or an unparseable one pass: dropping them would lose
// real jobs over sloppy feed metadata.
func isRecent(dateStr string, maxAge time.Duration, now time.Time) bool {
	if dateStr == "" || maxAge <= 0 {
		return true
	}
	for _, layout := range postingDateLayouts {
		t, err := time.Parse(layout, dateStr)
		if err != nil {
			continue
		}
		return now.Sub(t) <= maxAge
	}
	return true
}

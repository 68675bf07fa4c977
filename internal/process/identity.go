package process

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// Query parameter names that carry a site-assigned job identifier, in
// priority order.
var idQueryParams = []string{"id", "job_id", "jobId", "posting_id"}

// fingerprint computes the 16-hex-char deduplication identity of a posting.
// When the URL embeds a site-assigned identifier the fingerprint is derived
// from host + identifier, so the same posting reached via different titles
// still collapses. Otherwise it falls back to the lowercased title + company
// pair, which is stable across sources that assign no usable URL.
func fingerprint(title, company, rawURL string) string {
	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil {
			if id := identifierFromURL(u); id != "" {
				return hash16(u.Host + "_" + id)
			}
		}
	}

	combined := strings.ToLower(title) + "_" + strings.ToLower(company)
	combined = strings.ReplaceAll(combined, " ", "_")
	return hash16(combined)
}

// identifierFromURL looks for a job identifier first in the query parameters,
// then in the path segments scanned from the end. A path segment qualifies if
// it is all digits or longer than 10 characters (slug-style IDs).
func identifierFromURL(u *url.URL) string {
	query := u.Query()
	for _, param := range idQueryParams {
		if v := query.Get(param); v != "" {
			return v
		}
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" {
			continue
		}
		if allDigits(seg) || len(seg) > 10 {
			return seg
		}
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// hash16 returns the first 16 hex characters of the md5 digest. 64 bits is
// plenty for dedup identity; cryptographic strength is not required.
func hash16(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

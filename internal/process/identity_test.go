package process

import (
	"regexp"
	"testing"
)

var hex16 = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestFingerprint_Format(t *testing.T) {
	fp := fingerprint("Software Engineer", "Acme", "https://example.com/jobs/998877")
	if !hex16.MatchString(fp) {
		t.Errorf("fingerprint = %q, want 16 lowercase hex chars", fp)
	}
}

func TestFingerprint_URLIdentifierWinsOverTitle(t *testing.T) {
	a := fingerprint("Software Engineer", "Acme", "https://example.com/jobs/998877")
	b := fingerprint("Sr. Software Engineer (Remote)", "Acme Inc", "https://example.com/jobs/998877")
	if a != b {
		t.Errorf("same URL identifier produced different fingerprints: %q vs %q", a, b)
	}
}

func TestFingerprint_QueryParamPriority(t *testing.T) {
	// job_id should be found even with other params present.
	a := fingerprint("X", "Y", "https://jobs.example.com/view?utm_source=feed&job_id=abc-123")
	b := fingerprint("Z", "W", "https://jobs.example.com/other?job_id=abc-123")
	if a != b {
		t.Errorf("same job_id produced different fingerprints: %q vs %q", a, b)
	}

	// id takes priority over job_id when both are present.
	c := fingerprint("X", "Y", "https://jobs.example.com/view?job_id=later&id=first")
	d := fingerprint("X", "Y", "https://jobs.example.com/view?id=first")
	if c != d {
		t.Errorf("id param should take priority: %q vs %q", c, d)
	}
}

func TestFingerprint_PathSegmentFromEnd(t *testing.T) {
	// Last qualifying segment wins: all-digits or longer than 10 chars.
	a := fingerprint("X", "Y", "https://example.com/careers/12345/apply-now-today")
	b := fingerprint("X", "Y", "https://example.com/other/apply-now-today")
	if a != b {
		t.Errorf("expected trailing long segment to be the identifier: %q vs %q", a, b)
	}
}

func TestFingerprint_HostDisambiguates(t *testing.T) {
	a := fingerprint("X", "Y", "https://boards-a.example.com/jobs/998877")
	b := fingerprint("X", "Y", "https://boards-b.example.com/jobs/998877")
	if a == b {
		t.Error("same path on different hosts must not collide")
	}
}

func TestFingerprint_TitleCompanyFallback(t *testing.T) {
	tests := []struct {
		name           string
		titleA, compA  string
		titleB, compB  string
		urlA, urlB     string
		wantSame       bool
	}{
		{
			name:   "case and identical pair",
			titleA: "Senior Engineer", compA: "Acme Corp",
			titleB: "senior engineer", compB: "ACME CORP",
			wantSame: true,
		},
		{
			name:   "different company differs",
			titleA: "Senior Engineer", compA: "Acme",
			titleB: "Senior Engineer", compB: "Globex",
			wantSame: false,
		},
		{
			name:   "url without extractable id falls back",
			titleA: "Senior Engineer", compA: "Acme",
			urlA:   "https://example.com/jobs",
			titleB: "Senior Engineer", compB: "Acme",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fingerprint(tt.titleA, tt.compA, tt.urlA)
			b := fingerprint(tt.titleB, tt.compB, tt.urlB)
			if (a == b) != tt.wantSame {
				t.Errorf("fingerprints a=%q b=%q, wantSame=%v", a, b, tt.wantSame)
			}
		})
	}
}

func TestIdentifierFromURL_ShortSlugSegmentsIgnored(t *testing.T) {
	a := fingerprint("Title", "Co", "https://example.com/jobs/apply")
	b := fingerprint("Title", "Co", "")
	if a != b {
		t.Errorf("short non-numeric segments should not become identifiers: %q vs %q", a, b)
	}
}

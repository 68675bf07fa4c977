package model

import (
	"context"
	"time"
)

// RawPosting is an unvalidated job record produced by an acquisition source.
// Every field is optional; absent values are empty strings. Sources that only
// have a short description put it in Snippet; extraction falls back to it
// when Description is empty.
type RawPosting struct {
	Title       string
	Company     string
	URL         string
	Location    string
	Description string
	Snippet     string
	Salary      string
	SourceSite  string
	SearchTerm  string
	PostingDate string
	FoundDate   string
}

// ProcessedJob is the canonical job record produced by the normalization
// pipeline. It is never mutated after construction.
type ProcessedJob struct {
	ID             string // 16-hex-char fingerprint used for deduplication
	Title          string
	Company        string
	URL            string
	Location       string
	Salary         string // cleaned raw salary text
	SalaryMin      *int   // USD annual; both set or both nil
	SalaryMax      *int
	Description    string
	Summary        string
	Requirements   string
	SourceSite     string
	SearchTerm     string
	PostingDate    string
	FoundDate      string
	IsRemote       bool
	RelevanceScore float64 // always in [0.0, 1.0]
}

// HasSalary reports whether a salary band was extracted.
func (j ProcessedJob) HasSalary() bool {
	return j.SalaryMin != nil && j.SalaryMax != nil
}

// Source produces raw postings for a search term (e.g. an RSS feed).
type Source interface {
	Name() string
	Search(ctx context.Context, term string) ([]RawPosting, error)
}

// FingerprintStore persists emitted fingerprints across runs so callers can
// pre-seed a pipeline's seen-set. The pipeline itself never touches it.
type FingerprintStore interface {
	HasSeen(fingerprint string) (bool, error)
	MarkSeen(fingerprint string) error
	LoadAll() ([]string, error)
	IsEmpty() (bool, error)
	Cleanup(olderThan time.Duration) error
}

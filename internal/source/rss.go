package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

// Per-feed cap on items considered, before filtering.
const feedItemLimit = 10

// FeedSource fetches job postings from an RSS 2.0 or Atom feed. The feed URL
// may contain a {query} placeholder replaced with the URL-escaped search
// term; static feeds (no placeholder) are fetched as-is and filtered by term.
type FeedSource struct {
	name        string
	urlTemplate string
	client      *http.Client
	maxAge      time.Duration
	now         func() time.Time
}

// NewFeedSource creates a source for one feed. maxAge bounds posting
// freshness; zero disables the recency filter.
func NewFeedSource(name, urlTemplate string, client *http.Client, maxAge time.Duration) *FeedSource {
	return &FeedSource{
		name:        name,
		urlTemplate: urlTemplate,
		client:      client,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

func (s *FeedSource) Name() string { return s.name }

// feedDocument unifies the two feed shapes: RSS items live under <channel>,
// Atom entries sit at the root. Unqualified field names match either
// namespace.
type feedDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomEntry struct {
	Title     string   `xml:"title"`
	Link      atomLink `xml:"link"`
	Summary   string   `xml:"summary"`
	Published string   `xml:"published"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}

// Search fetches the feed and returns postings that mention both "remote"
// and the search term.
func (s *FeedSource) Search(ctx context.Context, term string) ([]model.RawPosting, error) {
	feedURL := strings.ReplaceAll(s.urlTemplate, "{query}", url.QueryEscape(term))

	req, err := newRequest(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", s.name, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s: %w", s.name, statusError(resp))
	}

	var doc feedDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("feed %s: parsing feed: %w", s.name, err)
	}

	items := doc.Channel.Items
	for _, e := range doc.Entries {
		link := e.Link.Href
		if link == "" {
			link = strings.TrimSpace(e.Link.Text)
		}
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        link,
			Description: e.Summary,
			PubDate:     e.Published,
		})
	}
	if len(items) > feedItemLimit {
		items = items[:feedItemLimit]
	}

	var postings []model.RawPosting
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !mentionsAll(item.Title+" "+item.Description, "remote", term) {
			continue
		}
		if !isRecent(item.PubDate, s.maxAge, s.now()) {
			continue
		}
		postings = append(postings, model.RawPosting{
			Title:       item.Title,
			URL:         strings.TrimSpace(item.Link),
			Snippet:     truncateRunes(item.Description, 200),
			SourceSite:  s.name,
			SearchTerm:  term,
			PostingDate: item.PubDate,
		})
	}
	return postings, nil
}

// mentionsAll reports whether text contains every needle, case-insensitively.
func mentionsAll(text string, needles ...string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if !strings.Contains(lower, strings.ToLower(n)) {
			return false
		}
	}
	return true
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

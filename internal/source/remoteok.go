package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

const remoteOKAPIURL = "https://remoteok.io/api"

// Cap on postings taken from one API response.
const remoteOKLimit = 20

// RemoteOKSource fetches postings from the RemoteOK JSON API. The first array
// element is a legal notice rather than a job; it and any entry that fails to
// decode are skipped.
type RemoteOKSource struct {
	apiURL string
	client *http.Client
	maxAge time.Duration
	now    func() time.Time
}

// NewRemoteOKSource creates the RemoteOK API source. maxAge bounds posting
// freshness; zero disables the recency filter.
func NewRemoteOKSource(client *http.Client, maxAge time.Duration) *RemoteOKSource {
	return &RemoteOKSource{
		apiURL: remoteOKAPIURL,
		client: client,
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (s *RemoteOKSource) Name() string { return "remoteok.io" }

type remoteOKPosting struct {
	ID          flexString `json:"id"`
	Position    string     `json:"position"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	SalaryMin   flexString `json:"salary_min"`
}

// flexString accepts JSON strings and numbers; the RemoteOK API is not
// consistent about which one it sends for ids and salaries.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Search fetches the API listing and returns postings matching the search
// term over position, company, and description.
func (s *RemoteOKSource) Search(ctx context.Context, term string) ([]model.RawPosting, error) {
	req, err := newRequest(ctx, s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok: %w", statusError(resp))
	}

	var entries []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("remoteok: parsing response: %w", err)
	}
	if len(entries) > remoteOKLimit {
		entries = entries[:remoteOKLimit]
	}

	var postings []model.RawPosting
	for _, raw := range entries {
		var p remoteOKPosting
		if err := json.Unmarshal(raw, &p); err != nil || p.Position == "" {
			continue
		}
		if !mentionsAll(p.Position+" "+p.Company+" "+p.Description, term) {
			continue
		}
		if !isRecent(p.Date, s.maxAge, s.now()) {
			continue
		}
		postings = append(postings, model.RawPosting{
			Title:       p.Position,
			Company:     p.Company,
			URL:         "https://remoteok.io/remote-jobs/" + string(p.ID),
			Location:    "Remote",
			Snippet:     truncateRunes(p.Description, 200),
			Salary:      string(p.SalaryMin),
			SourceSite:  s.Name(),
			SearchTerm:  term,
			PostingDate: p.Date,
		})
	}
	return postings, nil
}

// SetAPIURL overrides the API endpoint. Tests point it at a local server.
func (s *RemoteOKSource) SetAPIURL(u string) {
	s.apiURL = strings.TrimSpace(u)
}

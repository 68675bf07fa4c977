package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const remoteOKPayload = `[
  {"legal": "API terms: please link back to remoteok.io"},
  {
    "id": "112233",
    "position": "Senior Golang Engineer",
    "company": "Acme",
    "description": "Build remote infrastructure in Go.",
    "date": "2026-08-24T10:00:00Z",
    "salary_min": 120000
  },
  {
    "id": 445566,
    "position": "Marketing Lead",
    "company": "Globex",
    "description": "Own the growth funnel.",
    "date": "2026-08-24T10:00:00Z"
  }
]`

func newTestRemoteOK(t *testing.T, payload string) *RemoteOKSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	src := NewRemoteOKSource(srv.Client(), 0)
	src.SetAPIURL(srv.URL)
	return src
}

func TestRemoteOK_Search(t *testing.T) {
	src := newTestRemoteOK(t, remoteOKPayload)

	postings, err := src.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("got %d postings, want 1", len(postings))
	}

	p := postings[0]
	if p.Title != "Senior Golang Engineer" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Company != "Acme" {
		t.Errorf("company = %q", p.Company)
	}
	if p.URL != "https://remoteok.io/remote-jobs/112233" {
		t.Errorf("url = %q", p.URL)
	}
	if p.Location != "Remote" {
		t.Errorf("location = %q, want Remote", p.Location)
	}
	if p.Salary != "120000" {
		t.Errorf("salary = %q, want numeric salary_min as text", p.Salary)
	}
}

func TestRemoteOK_LegalNoticeSkipped(t *testing.T) {
	src := newTestRemoteOK(t, remoteOKPayload)

	// "remoteok" appears only in the legal notice, which has no position.
	postings, err := src.Search(context.Background(), "remoteok.io")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("legal notice must never become a posting, got %d", len(postings))
	}
}

func TestRemoteOK_NumericID(t *testing.T) {
	src := newTestRemoteOK(t, remoteOKPayload)

	postings, err := src.Search(context.Background(), "marketing")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("got %d postings, want 1", len(postings))
	}
	if postings[0].URL != "https://remoteok.io/remote-jobs/445566" {
		t.Errorf("url = %q, want numeric id in path", postings[0].URL)
	}
}

func TestRemoteOK_MalformedJSON(t *testing.T) {
	src := newTestRemoteOK(t, `{not json`)

	if _, err := src.Search(context.Background(), "golang"); err == nil {
		t.Fatal("expected parse error")
	}
}

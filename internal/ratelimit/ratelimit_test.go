package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/XerafinaTaleSedrin/Jobsearchaide/internal/model"
)

func TestWait_FirstRequestImmediate(t *testing.T) {
	limiter := NewSourceRateLimiter(time.Hour)

	start := time.Now()
	if err := limiter.Wait(context.Background(), "remoteok.io"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first request waited %v, want immediate", elapsed)
	}
}

func TestWait_EnforcesDelayPerSource(t *testing.T) {
	limiter := NewSourceRateLimiter(50 * time.Millisecond)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second request to same source waited only %v", elapsed)
	}
}

func TestWait_DifferentSourcesIndependent(t *testing.T) {
	limiter := NewSourceRateLimiter(time.Hour)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different source waited %v, want immediate", elapsed)
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	limiter := NewSourceRateLimiter(time.Hour)

	ctx := context.Background()
	if err := limiter.Wait(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelCtx, "a"); err == nil {
		t.Fatal("expected cancellation error while waiting")
	}
}

// StaticSource returns a fixed posting list.
type StaticSource struct {
	name  string
	calls int
}

func (s *StaticSource) Name() string { return s.name }

func (s *StaticSource) Search(_ context.Context, _ string) ([]model.RawPosting, error) {
	s.calls++
	return []model.RawPosting{{Title: "Remote Engineer"}}, nil
}

func TestRateLimitedSource_Delegates(t *testing.T) {
	inner := &StaticSource{name: "feed"}
	src := NewRateLimitedSource(inner, NewSourceRateLimiter(time.Millisecond))

	postings, err := src.Search(context.Background(), "engineer")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(postings) != 1 || inner.calls != 1 {
		t.Errorf("postings=%d calls=%d, want 1/1", len(postings), inner.calls)
	}
	if src.Name() != "feed" {
		t.Errorf("Name() = %q, want inner name", src.Name())
	}
}

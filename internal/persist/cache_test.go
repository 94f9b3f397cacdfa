package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dikshacr123/research-agent/internal/research"
)

func newTestCache(t *testing.T) *ResearchCache {
	t.Helper()
	c, err := NewResearchCache(filepath.Join(t.TempDir(), "research.db"))
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutAndLatest(t *testing.T) {
	c := newTestCache(t)

	rec := research.Findings{
		Company:     "Tesla",
		Content:     "EV maker led by Elon Musk.",
		RetrievedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := c.Put(rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.Latest("Tesla")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cached record")
	}
	if got.Company != "Tesla" || got.Content != rec.Content {
		t.Fatalf("unexpected record: %#v", got)
	}
	if !got.RetrievedAt.Equal(rec.RetrievedAt) {
		t.Fatalf("timestamp changed: %v != %v", got.RetrievedAt, rec.RetrievedAt)
	}
}

func TestCacheLatestWinsAndKeyIsNormalized(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put(research.Findings{Company: "Tesla", Content: "old"}); err != nil {
		t.Fatalf("put old: %v", err)
	}
	if err := c.Put(research.Findings{Company: "tesla", Content: "new"}); err != nil {
		t.Fatalf("put new: %v", err)
	}

	got, err := c.Latest("TESLA")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil || got.Content != "new" {
		t.Fatalf("expected newest record, got %#v", got)
	}
}

func TestCacheMissReturnsNil(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Latest("Nobody")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for cache miss, got %#v", got)
	}
}

func TestCacheCompaniesMostRecentFirst(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put(research.Findings{Company: "Acme", Content: "a"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Put(research.Findings{Company: "Tesla", Content: "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	companies, err := c.Companies()
	if err != nil {
		t.Fatalf("companies: %v", err)
	}
	if len(companies) != 2 || companies[0] != "Tesla" || companies[1] != "Acme" {
		t.Fatalf("unexpected companies: %#v", companies)
	}
}

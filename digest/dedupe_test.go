package digest

import (
	"reflect"
	"testing"
	"time"
)

func TestDedupeReleasesSameRepoAndTag(t *testing.T) {
	b := testBuilder()
	first := b.Release(RawRelease{Repo: "acme/tool", Tag: "v1.0.0", PublishedAt: time.Unix(1000, 0)})
	second := b.Release(RawRelease{Repo: "acme/tool", Tag: "v1.0.0", PublishedAt: time.Unix(2000, 0)})

	got := Dedupe([]Record{first, second}, ReleaseIdentity)
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if !got[0].Timestamp.Equal(first.Timestamp) {
		t.Error("dedup must keep the first-seen record")
	}
}

func TestDedupeReleasesSameTagAcrossRepos(t *testing.T) {
	b := testBuilder()
	records := []Record{
		b.Release(RawRelease{Repo: "acme/tool", Tag: "v1.0.0"}),
		b.Release(RawRelease{Repo: "other/tool", Tag: "v1.0.0"}),
	}
	if got := Dedupe(records, ReleaseIdentity); len(got) != 2 {
		t.Errorf("got %d records, want 2: equal tags across repos are distinct", len(got))
	}
}

func TestDedupeStoriesByNormalizedURL(t *testing.T) {
	records := []Record{
		{Title: "a", CanonicalID: "https://news.ycombinator.com/item?id=42"},
		{Title: "b", CanonicalID: "HTTPS://NEWS.ycombinator.com/item?id=42"},
		{Title: "c", CanonicalID: "https://news.ycombinator.com/item?id=43"},
	}
	got := Dedupe(records, StoryIdentity)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Title != "a" || got[1].Title != "c" {
		t.Errorf("order not preserved: %v, %v", got[0].Title, got[1].Title)
	}
}

func TestDedupeArticlesKeepsEverything(t *testing.T) {
	records := []Record{
		{Title: "a", CanonicalID: "https://example.com/x"},
		{Title: "b", CanonicalID: "https://example.com/x"},
	}
	if got := Dedupe(records, ArticleIdentity); len(got) != 2 {
		t.Errorf("got %d records, want 2: feed entries are never identity-deduped", len(got))
	}
}

func TestDedupeIdempotent(t *testing.T) {
	records := []Record{
		{CanonicalID: "k1", Repo: "a/b", Version: "v1"},
		{CanonicalID: "k1", Repo: "a/b", Version: "v1"},
		{CanonicalID: "k2", Repo: "a/b", Version: "v2"},
	}
	once := Dedupe(records, ReleaseIdentity)
	twice := Dedupe(once, ReleaseIdentity)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent: %v != %v", once, twice)
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil, ReleaseIdentity); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

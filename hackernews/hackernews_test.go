package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func hit(id, title string, points int, created time.Time) searchHit {
	return searchHit{
		Title:       title,
		URL:         "https://example.com/" + id,
		ObjectID:    id,
		Points:      points,
		Author:      "alice",
		NumComments: points / 10,
		CreatedAt:   created.Format(time.RFC3339),
	}
}

func searchServer(t *testing.T, hitsByQuery map[string][]searchHit) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query().Get("query")
		if got := r.URL.Query().Get("tags"); got != "story" {
			t.Errorf("tags = %q, want story", got)
		}
		json.NewEncoder(w).Encode(searchResponse{Hits: hitsByQuery[query]})
	}))
}

func TestSearchMergesAndSortsByPoints(t *testing.T) {
	now := time.Now().UTC()
	server := searchServer(t, map[string][]searchHit{
		"kubernetes": {hit("1", "low", 60, now), hit("2", "high", 300, now)},
		"docker":     {hit("3", "mid", 120, now)},
	})
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	stories, err := client.Search(context.Background(), SearchOptions{
		Keywords: []string{"kubernetes", "docker"},
		MinScore: 50,
		MaxItems: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("got %d stories, want 3", len(stories))
	}
	for i, want := range []string{"high", "mid", "low"} {
		if stories[i].Title != want {
			t.Errorf("stories[%d] = %s, want %s", i, stories[i].Title, want)
		}
	}
}

func TestSearchDedupesAcrossKeywords(t *testing.T) {
	now := time.Now().UTC()
	shared := hit("42", "shared story", 200, now)
	server := searchServer(t, map[string][]searchHit{
		"kubernetes": {shared},
		"devops":     {shared},
	})
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	stories, err := client.Search(context.Background(), SearchOptions{
		Keywords: []string{"kubernetes", "devops"},
		MaxItems: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 1 {
		t.Fatalf("got %d stories, want 1", len(stories))
	}
	if stories[0].Keyword != "kubernetes" {
		t.Errorf("keyword = %q, want first keyword kept", stories[0].Keyword)
	}
}

func TestSearchDropsStoriesBeforeCutoff(t *testing.T) {
	now := time.Now().UTC()
	server := searchServer(t, map[string][]searchHit{
		"devops": {
			hit("1", "fresh", 100, now),
			hit("2", "stale", 100, now.Add(-72*time.Hour)),
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	stories, err := client.Search(context.Background(), SearchOptions{
		Keywords: []string{"devops"},
		MaxItems: 10,
		Cutoff:   now.Add(-24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 1 || stories[0].Title != "fresh" {
		t.Errorf("stories = %+v, want only fresh", stories)
	}
}

func TestSearchCapsAtMaxItems(t *testing.T) {
	now := time.Now().UTC()
	var hits []searchHit
	for i := 0; i < 8; i++ {
		hits = append(hits, hit(fmt.Sprintf("%d", i), fmt.Sprintf("story %d", i), 100+i, now))
	}
	server := searchServer(t, map[string][]searchHit{"devops": hits})
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	stories, err := client.Search(context.Background(), SearchOptions{
		Keywords: []string{"devops"},
		MaxItems: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("got %d stories, want 3", len(stories))
	}
	if stories[0].Points != 107 {
		t.Errorf("top story points = %d, want highest kept", stories[0].Points)
	}
}

func TestSearchKeywordFailureDoesNotAbort(t *testing.T) {
	now := time.Now().UTC()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{Hits: []searchHit{hit("1", "ok", 90, now)}})
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.Client(), server.URL)
	stories, err := client.Search(context.Background(), SearchOptions{
		Keywords: []string{"broken", "devops"},
		MaxItems: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 1 || stories[0].Title != "ok" {
		t.Errorf("stories = %+v, want the healthy keyword's hit", stories)
	}
}

func TestSearchEmptyKeywords(t *testing.T) {
	client := NewClient(nil)
	stories, err := client.Search(context.Background(), SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 0 {
		t.Errorf("stories = %+v, want none", stories)
	}
}

// Package hackernews searches Hacker News stories through the Algolia
// search API.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const BaseURL = "https://hn.algolia.com/api/v1"

// Story is one search hit.
type Story struct {
	Title       string
	URL         string
	ObjectID    string
	Points      int
	Author      string
	NumComments int
	CreatedAt   time.Time
	// Keyword is the search term that surfaced the story.
	Keyword string
}

// SearchOptions bounds one search run.
type SearchOptions struct {
	Keywords []string
	MinScore int
	MaxItems int
	// Cutoff drops stories created before it.
	Cutoff time.Time
}

// Client searches stories.
type Client interface {
	Search(ctx context.Context, opts SearchOptions) ([]Story, error)
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new search client with the given HTTP client.
func NewClient(client *http.Client) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client, baseURL: BaseURL}
}

// NewClientWithBaseURL creates a new search client with a custom base
// URL (for testing).
func NewClientWithBaseURL(client *http.Client, baseURL string) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client, baseURL: baseURL}
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	ObjectID    string `json:"objectID"`
	Points      int    `json:"points"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	CreatedAt   string `json:"created_at"`
}

// Search runs one query per keyword and merges the hits: stories older
// than the cutoff are dropped, the same discussion reached through
// different keywords is kept once (first keyword wins), and the merged
// set is sorted by points descending and capped at MaxItems. A failing
// keyword query logs and does not abort the remaining keywords.
func (c *httpClient) Search(ctx context.Context, opts SearchOptions) ([]Story, error) {
	var stories []Story
	seen := make(map[string]bool)

	for _, keyword := range opts.Keywords {
		hits, err := c.searchKeyword(ctx, keyword, opts)
		if err != nil {
			slog.Error("hacker news search failed", "keyword", keyword, "error", err)
			continue
		}
		for _, hit := range hits {
			created, err := time.Parse(time.RFC3339, hit.CreatedAt)
			if err != nil {
				// Malformed timestamp; keep the story rather than lose it.
				created = time.Time{}
			}
			if !opts.Cutoff.IsZero() && !created.IsZero() && created.Before(opts.Cutoff) {
				continue
			}
			if seen[hit.ObjectID] {
				continue
			}
			seen[hit.ObjectID] = true
			stories = append(stories, Story{
				Title:       hit.Title,
				URL:         hit.URL,
				ObjectID:    hit.ObjectID,
				Points:      hit.Points,
				Author:      hit.Author,
				NumComments: hit.NumComments,
				CreatedAt:   created,
				Keyword:     keyword,
			})
		}
	}

	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].Points > stories[j].Points
	})
	if opts.MaxItems > 0 && len(stories) > opts.MaxItems {
		stories = stories[:opts.MaxItems]
	}
	return stories, nil
}

func (c *httpClient) searchKeyword(ctx context.Context, keyword string, opts SearchOptions) ([]searchHit, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("tags", "story")
	params.Set("numericFilters", fmt.Sprintf("points>=%d", opts.MinScore))
	if opts.MaxItems > 0 {
		params.Set("hitsPerPage", fmt.Sprintf("%d", opts.MaxItems))
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q returned status %d", keyword, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response for %q: %w", keyword, err)
	}
	return parsed.Hits, nil
}

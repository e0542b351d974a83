// Package github fetches recent releases for a watchlist of GitHub
// repositories.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const BaseURL = "https://api.github.com"

// perRepoLimit caps how many of a repo's latest releases are
// considered per fetch.
const perRepoLimit = 5

// Repo identifies one watched repository.
type Repo struct {
	Name     string // display name
	Repo     string // owner/name
	Category string
}

// Release is one release of a watched repository.
type Release struct {
	Name        string // watchlist display name
	Repo        string
	Category    string
	Tag         string
	Title       string
	URL         string
	Body        string
	PublishedAt time.Time
	Prerelease  bool
	AssetsCount int
}

// Client fetches releases.
type Client interface {
	FetchReleases(ctx context.Context, repos []Repo, cutoff time.Time) ([]Release, error)
}

type httpClient struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a releases client. token is the optional bearer
// credential passed through for higher rate limits; empty means
// unauthenticated.
func NewClient(client *http.Client, token string) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client, baseURL: BaseURL, token: token}
}

// NewClientWithBaseURL creates a releases client with a custom base
// URL (for testing).
func NewClientWithBaseURL(client *http.Client, baseURL, token string) Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{client: client, baseURL: baseURL, token: token}
}

type apiRelease struct {
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	HTMLURL     string     `json:"html_url"`
	Body        string     `json:"body"`
	PublishedAt string     `json:"published_at"`
	Prerelease  bool       `json:"prerelease"`
	Assets      []struct{} `json:"assets"`
}

// FetchReleases collects each watched repo's releases published at or
// after cutoff, up to the per-repo limit of most recent entries. A
// failing repo logs and does not abort the rest.
func (c *httpClient) FetchReleases(ctx context.Context, repos []Repo, cutoff time.Time) ([]Release, error) {
	var releases []Release
	for _, repo := range repos {
		fetched, err := c.fetchRepo(ctx, repo, cutoff)
		if err != nil {
			slog.Error("fetching releases failed", "repo", repo.Repo, "error", err)
			continue
		}
		releases = append(releases, fetched...)
	}
	return releases, nil
}

func (c *httpClient) fetchRepo(ctx context.Context, repo Repo, cutoff time.Time) ([]Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", c.baseURL, repo.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating releases request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching releases for %s: %w", repo.Repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("releases for %s returned status %d", repo.Repo, resp.StatusCode)
	}

	var parsed []apiRelease
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding releases for %s: %w", repo.Repo, err)
	}

	if len(parsed) > perRepoLimit {
		parsed = parsed[:perRepoLimit]
	}

	var releases []Release
	for _, r := range parsed {
		published, err := time.Parse(time.RFC3339, r.PublishedAt)
		if err != nil {
			slog.Warn("skipping release with unparseable date", "repo", repo.Repo, "tag", r.TagName, "published_at", r.PublishedAt)
			continue
		}
		if published.Before(cutoff) {
			continue
		}
		releases = append(releases, Release{
			Name:        repo.Name,
			Repo:        repo.Repo,
			Category:    repo.Category,
			Tag:         r.TagName,
			Title:       r.Name,
			URL:         r.HTMLURL,
			Body:        r.Body,
			PublishedAt: published,
			Prerelease:  r.Prerelease,
			AssetsCount: len(r.Assets),
		})
	}
	return releases, nil
}

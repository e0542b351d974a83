// Package scraper extracts readable article text from web pages. The
// feeds fetcher uses it to backfill summaries for entries that ship
// without one.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	readability "github.com/go-shiori/go-readability"

	"devops-digest/normalize"
)

// maxContentLength caps extracted text so a single long article cannot
// dominate a digest preview.
const maxContentLength = 4000

const userAgent = "devops-digest/1.0"

// Scraper interface for article content extraction.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

type httpScraper struct {
	client *http.Client
}

// NewScraper creates a Scraper with the given timeout for HTTP
// requests.
func NewScraper(timeout time.Duration) Scraper {
	return &httpScraper{
		client: &http.Client{Timeout: timeout},
	}
}

// NewScraperWithClient creates a Scraper with a custom HTTP client
// (for testing).
func NewScraperWithClient(client *http.Client) Scraper {
	return &httpScraper{client: client}
}

// Scrape fetches the given URL, extracts the readable text, collapses
// its whitespace, and truncates it to the content cap.
func (s *httpScraper) Scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating scrape request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scraping %s returned status %d", url, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, nil)
	if err != nil {
		return "", fmt.Errorf("extracting content from %s: %w", url, err)
	}

	content := normalize.CollapseWhitespace(article.TextContent)
	if len(content) > maxContentLength {
		content = content[:maxContentLength]
	}

	return content, nil
}

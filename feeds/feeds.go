// Package feeds fetches and filters syndication-feed entries.
package feeds

import (
	"context"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// perFeedLimit caps how many of a feed's latest entries are considered
// per fetch.
const perFeedLimit = 10

// Feed identifies one watched feed.
type Feed struct {
	Name     string
	URL      string
	Category string
}

// Entry is one feed entry.
type Entry struct {
	Title       string
	Link        string
	Source      string
	Category    string
	Summary     string
	Content     string
	Author      string
	PublishedAt time.Time
}

// ContentScraper extracts readable content from URLs, used as a
// summary fallback for entries that ship without one.
type ContentScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Fetcher fetches feed entries.
type Fetcher interface {
	Fetch(ctx context.Context, feeds []Feed, cutoff time.Time) ([]Entry, error)
}

type gofeedFetcher struct {
	parser *gofeed.Parser
	// scraper is optional; nil disables summary backfill.
	scraper ContentScraper
}

// NewFetcher creates a Fetcher. scraper may be nil to disable fetching
// article content for entries without a summary.
func NewFetcher(scraper ContentScraper) Fetcher {
	return &gofeedFetcher{parser: gofeed.NewParser(), scraper: scraper}
}

// Fetch parses every watched feed and returns the entries published at
// or after cutoff, up to the per-feed limit of most recent entries.
// Entries without any parseable date are kept. A failing feed logs and
// does not abort the rest.
func (f *gofeedFetcher) Fetch(ctx context.Context, feeds []Feed, cutoff time.Time) ([]Entry, error) {
	var entries []Entry
	for _, feed := range feeds {
		parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			slog.Error("fetching feed failed", "feed", feed.Name, "url", feed.URL, "error", err)
			continue
		}

		items := parsed.Items
		if len(items) > perFeedLimit {
			items = items[:perFeedLimit]
		}

		for _, item := range items {
			published := itemDate(item)
			if !cutoff.IsZero() && !published.IsZero() && published.Before(cutoff) {
				continue
			}

			entry := Entry{
				Title:       item.Title,
				Link:        item.Link,
				Source:      feed.Name,
				Category:    feed.Category,
				Summary:     item.Description,
				Content:     item.Content,
				PublishedAt: published,
			}
			if item.Author != nil {
				entry.Author = item.Author.Name
			}
			if entry.Summary == "" && entry.Content == "" && f.scraper != nil && entry.Link != "" {
				content, err := f.scraper.Scrape(ctx, entry.Link)
				if err != nil {
					slog.Warn("summary backfill failed", "url", entry.Link, "error", err)
				} else {
					entry.Content = content
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// itemDate prefers the parsed published date, then the updated date,
// then a lenient parse of the raw published string for feeds with
// nonstandard formats.
func itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
	}
	return time.Time{}
}

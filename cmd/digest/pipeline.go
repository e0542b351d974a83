package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"devops-digest/classify"
	"devops-digest/config"
	"devops-digest/digest"
	"devops-digest/feeds"
	"devops-digest/github"
	"devops-digest/hackernews"
	"devops-digest/highlight"
	"devops-digest/render"
	"devops-digest/scraper"
)

const (
	reportDaily    = "daily"
	reportWeekly   = "weekly"
	reportTriDaily = "tri-daily"
)

func validReportType(t string) bool {
	return t == reportDaily || t == reportWeekly || t == reportTriDaily
}

// lookback is how far back a report reaches. Weekly reports cover the
// past week, everything else the past day.
func lookback(reportType string) time.Duration {
	if reportType == reportWeekly {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// pipeline wires the fetchers and the digest core for one config.
type pipeline struct {
	cfg        config.Config
	classifier *classify.Classifier
	builder    *digest.Builder
	releases   github.Client
	articles   feeds.Fetcher
	stories    hackernews.Client
}

func newPipeline(cfg config.Config) *pipeline {
	timeout := time.Duration(cfg.FetchTimeoutSec) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	var contentScraper feeds.ContentScraper
	if cfg.ScrapeMissingSummaries {
		contentScraper = scraper.NewScraper(timeout)
	}

	classifier := classify.Default()
	return &pipeline{
		cfg:        cfg,
		classifier: classifier,
		builder:    digest.NewBuilder(classifier, highlight.DefaultOptions()),
		releases:   github.NewClient(httpClient, cfg.GitHubToken),
		articles:   feeds.NewFetcher(contentScraper),
		stories:    hackernews.NewClient(httpClient),
	}
}

// run fetches all configured sources and composes the digest. A failing
// source contributes no records and never aborts the run.
func (p *pipeline) run(ctx context.Context, reportType string, now time.Time) digest.Digest {
	cutoff := now.Add(-lookback(reportType))

	articles := p.fetchArticles(ctx, cutoff)
	releases := p.fetchReleases(ctx, cutoff)
	stories := p.fetchStories(ctx, cutoff)

	articles = digest.Dedupe(articles, digest.ArticleIdentity)
	releases = digest.Dedupe(releases, digest.ReleaseIdentity)
	stories = digest.Dedupe(stories, digest.StoryIdentity)

	digest.SortArticlesNewestFirst(articles)
	digest.SortReleasesNewestFirst(releases)
	digest.SortStoriesByPoints(stories)

	return digest.Compose(articles, releases, stories, reportType, now, p.classifier.LabelRank)
}

func (p *pipeline) fetchArticles(ctx context.Context, cutoff time.Time) []digest.Record {
	watched := make([]feeds.Feed, len(p.cfg.Feeds))
	for i, f := range p.cfg.Feeds {
		watched[i] = feeds.Feed{Name: f.Name, URL: f.URL, Category: f.Category}
	}

	entries, err := p.articles.Fetch(ctx, watched, cutoff)
	if err != nil {
		slog.Error("fetching feeds failed", "error", err)
		return nil
	}

	records := make([]digest.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, p.builder.Article(digest.RawEntry{
			Title:       e.Title,
			Link:        e.Link,
			Source:      e.Source,
			Category:    e.Category,
			Summary:     e.Summary,
			Content:     e.Content,
			Author:      e.Author,
			PublishedAt: e.PublishedAt,
		}))
	}
	return records
}

func (p *pipeline) fetchReleases(ctx context.Context, cutoff time.Time) []digest.Record {
	watched := make([]github.Repo, len(p.cfg.Repos))
	for i, r := range p.cfg.Repos {
		watched[i] = github.Repo{Name: r.Name, Repo: r.Repo, Category: r.Category}
	}

	releases, err := p.releases.FetchReleases(ctx, watched, cutoff)
	if err != nil {
		slog.Error("fetching releases failed", "error", err)
		return nil
	}

	records := make([]digest.Record, 0, len(releases))
	for _, r := range releases {
		records = append(records, p.builder.Release(digest.RawRelease{
			Name:        r.Name,
			Repo:        r.Repo,
			Category:    r.Category,
			Tag:         r.Tag,
			Title:       r.Title,
			URL:         r.URL,
			Body:        r.Body,
			PublishedAt: r.PublishedAt,
			Prerelease:  r.Prerelease,
			AssetsCount: r.AssetsCount,
		}))
	}
	return records
}

func (p *pipeline) fetchStories(ctx context.Context, cutoff time.Time) []digest.Record {
	hn := p.cfg.HackerNews
	if len(hn.Keywords) == 0 {
		return nil
	}

	stories, err := p.stories.Search(ctx, hackernews.SearchOptions{
		Keywords: hn.Keywords,
		MinScore: hn.MinScore,
		MaxItems: hn.MaxItems,
		Cutoff:   cutoff,
	})
	if err != nil {
		slog.Error("searching stories failed", "error", err)
		return nil
	}

	records := make([]digest.Record, 0, len(stories))
	for _, s := range stories {
		records = append(records, p.builder.Story(digest.RawStory{
			Title:       s.Title,
			URL:         s.URL,
			ObjectID:    s.ObjectID,
			Points:      s.Points,
			Author:      s.Author,
			NumComments: s.NumComments,
			CreatedAt:   s.CreatedAt,
		}, hn.MinScore))
	}
	return records
}

// outputPath places the report under <dir>/<type>/. Tri-daily reports
// run several times a day, so their filename carries the time.
func outputPath(dir, reportType string, now time.Time) string {
	name := fmt.Sprintf("digest-%s.md", now.Format("2006-01-02"))
	if reportType == reportTriDaily {
		name = fmt.Sprintf("digest-%s.md", now.Format("2006-01-02-1504"))
	}
	return filepath.Join(dir, reportType, name)
}

// writeReport renders the digest and writes it to its output path,
// creating the per-type directory as needed.
func writeReport(d digest.Digest, dir string) (string, error) {
	path := outputPath(dir, d.ReportType, d.GeneratedAt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(render.Markdown(d)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

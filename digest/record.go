// Package digest is the classification-and-aggregation core: it turns
// raw per-source items into structured records, deduplicates them,
// groups them by category, derives cross-source statistics, and
// composes the final digest document. Every operation is a pure
// transformation over in-memory data; fetching and rendering live in
// the collaborator packages.
package digest

import (
	"time"

	"devops-digest/highlight"
)

// Record is one normalized, classified unit derived from a single raw
// source item.
type Record struct {
	// Source is the display name of the originating source.
	Source string
	// SourceCategory is the category configured for the source, empty
	// when the source has none (stories).
	SourceCategory string
	Title       string
	URL         string
	// CanonicalID is the stable identity used for deduplication.
	CanonicalID string
	Repo        string
	Version     string
	Author      string
	Timestamp   time.Time
	BodyPreview string
	// Labels is never empty; classification falls back to "general".
	Labels []string
	// Tags holds at most classify.MaxTags entries in vocabulary order.
	Tags []string

	Prerelease       bool
	RecentAndPopular bool

	Points      int
	Comments    int
	AssetsCount int

	Highlights highlight.Buckets
}

// RawRelease is the source-specific shape of a GitHub release as
// handed over by the fetch collaborator.
type RawRelease struct {
	Name        string // display name from the watchlist
	Repo        string // owner/name
	Category    string
	Tag         string
	Title       string
	URL         string
	Body        string
	PublishedAt time.Time
	Prerelease  bool
	AssetsCount int
}

// RawEntry is the source-specific shape of a syndication-feed entry.
type RawEntry struct {
	Title       string
	Link        string
	Source      string
	Category    string
	Summary     string
	Content     string
	Author      string
	PublishedAt time.Time
}

// RawStory is the source-specific shape of a discussion-forum story.
type RawStory struct {
	Title       string
	URL         string
	ObjectID    string
	Points      int
	Author      string
	NumComments int
	CreatedAt   time.Time
}

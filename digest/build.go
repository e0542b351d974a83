package digest

import (
	"fmt"
	"strings"

	"devops-digest/classify"
	"devops-digest/highlight"
	"devops-digest/normalize"
)

const (
	// Preview lengths per source kind (runes).
	releasePreviewLen = 600
	articlePreviewLen = 200

	// Substituted when a raw item is missing the field entirely.
	unknownValue = "Unknown"
	noTitle      = "No title"

	discussionBaseURL = "https://news.ycombinator.com/item?id="
)

// Builder converts raw source items into classified Records. Missing
// fields are recovered locally with documented defaults; building
// never fails.
type Builder struct {
	classifier *classify.Classifier
	highlights highlight.Options
}

// NewBuilder returns a Builder using the given classifier and
// highlight options. A nil classifier falls back to the default
// tables.
func NewBuilder(c *classify.Classifier, opts highlight.Options) *Builder {
	if c == nil {
		c = classify.Default()
	}
	return &Builder{classifier: c, highlights: opts}
}

// Release builds a Record from a raw GitHub release. The canonical
// identity is repo plus tag, so re-fetches of the same release
// collapse in dedup while equal tags across repos stay distinct.
func (b *Builder) Release(raw RawRelease) Record {
	title := raw.Title
	if title == "" {
		title = raw.Tag
	}
	if title == "" {
		title = noTitle
	}
	version := raw.Tag
	if version == "" {
		version = unknownValue
	}

	classifiable := title + " " + raw.Body

	return Record{
		Source:         raw.Name,
		SourceCategory: raw.Category,
		Title:          title,
		URL:            raw.URL,
		CanonicalID:    ReleaseKey(raw.Repo, version),
		Repo:           raw.Repo,
		Version:        version,
		Timestamp:      raw.PublishedAt,
		BodyPreview:    normalize.Preview(raw.Body, releasePreviewLen),
		Labels:         b.labels(raw.Category, classifiable),
		Tags:           b.classifier.Tags(classifiable, classify.MaxTags),
		Prerelease:     raw.Prerelease,
		AssetsCount:    raw.AssetsCount,
		Highlights:     highlight.Extract(raw.Body, b.highlights),
	}
}

// Article builds a Record from a raw feed entry. The summary is
// stripped of markup and previewed; the content body stands in when
// the summary is absent.
func (b *Builder) Article(raw RawEntry) Record {
	title := raw.Title
	if title == "" {
		title = noTitle
	}
	body := raw.Summary
	if body == "" {
		body = raw.Content
	}
	body = normalize.StripMarkup(body)

	classifiable := title + " " + body

	return Record{
		Source:         raw.Source,
		SourceCategory: raw.Category,
		Title:          title,
		URL:            raw.Link,
		CanonicalID:    raw.Link,
		Author:         raw.Author,
		Timestamp:      raw.PublishedAt,
		BodyPreview:    normalize.Preview(body, articlePreviewLen),
		Labels:         b.labels(raw.Category, classifiable),
		Tags:           b.classifier.Tags(classifiable, classify.MaxTags),
		Highlights:     highlight.Buckets{},
	}
}

// Story builds a Record from a raw discussion story. The canonical
// identity is the normalized discussion-thread URL. minScore marks
// the record recent-and-popular when its points meet it.
func (b *Builder) Story(raw RawStory, minScore int) Record {
	title := raw.Title
	if title == "" {
		title = noTitle
	}
	author := raw.Author
	if author == "" {
		author = unknownValue
	}
	discussionURL := discussionBaseURL + raw.ObjectID
	url := raw.URL
	if url == "" {
		url = discussionURL
	}

	return Record{
		Source:           "Hacker News",
		Title:            title,
		URL:              url,
		CanonicalID:      NormalizeURL(discussionURL),
		Author:           author,
		Timestamp:        raw.CreatedAt,
		Labels:           b.classifier.Topics(title),
		Tags:             b.classifier.Tags(title, classify.MaxTags),
		RecentAndPopular: minScore > 0 && raw.Points >= minScore,
		Points:           raw.Points,
		Comments:         raw.NumComments,
		Highlights:       highlight.Buckets{},
	}
}

// labels returns the configured category (when present) plus the
// classified topics of text, deduplicated, never empty. The "general"
// sentinel only appears when no other label exists.
func (b *Builder) labels(category, text string) []string {
	topics := b.classifier.Topics(text)
	if category == "" {
		return topics
	}
	labels := []string{category}
	for _, topic := range topics {
		if topic != category && topic != classify.GeneralLabel {
			labels = append(labels, topic)
		}
	}
	return labels
}

// ReleaseKey is the canonical identity of a release: repo plus tag.
func ReleaseKey(repo, tag string) string {
	return fmt.Sprintf("%s@%s", repo, tag)
}

// NormalizeURL lowercases a URL's scheme and host and drops a trailing
// slash, so equivalent spellings of the same discussion thread compare
// equal.
func NormalizeURL(rawURL string) string {
	u := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	if i := strings.Index(u, "://"); i >= 0 {
		scheme := strings.ToLower(u[:i])
		rest := u[i+3:]
		if j := strings.IndexAny(rest, "/?#"); j >= 0 {
			return scheme + "://" + strings.ToLower(rest[:j]) + rest[j:]
		}
		return scheme + "://" + strings.ToLower(rest)
	}
	return u
}

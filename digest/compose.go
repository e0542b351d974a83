package digest

import (
	"sort"
	"time"
)

// Digest is the final merged document: summary statistics first, then
// each source's grouped output in fixed order (articles, releases,
// stories). The presentation layer serializes it without re-deriving
// any classification or counts.
type Digest struct {
	ReportType  string
	GeneratedAt time.Time
	Stats       Stats
	Articles    []Group
	Releases    []Group
	Stories     []Group
	// TopStoryTopics is the story grouping reordered most populous
	// first, for the topic-frequency summary line.
	TopStoryTopics []Group
}

// Compose merges the three sources' record sets into one digest.
// Inputs must already be deduplicated and sorted (releases newest
// first, stories by points); Compose copies what it needs and does not
// mutate its inputs. Pure: no I/O, no clock reads.
func Compose(articles, releases, stories []Record, reportType string, now time.Time, rank func(string) int) Digest {
	storyGroups := GroupByLabel(stories, rank)
	return Digest{
		ReportType:     reportType,
		GeneratedAt:    now,
		Stats:          AggregateStats(articles, releases, stories),
		Articles:       GroupByLabel(articles, rank),
		Releases:       GroupByLabel(releases, rank),
		Stories:        storyGroups,
		TopStoryTopics: GroupsByPopulation(storyGroups),
	}
}

// SortReleasesNewestFirst orders releases by publication time
// descending, in place. Callers run this before grouping so records
// within a category appear newest first.
func SortReleasesNewestFirst(releases []Record) {
	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].Timestamp.After(releases[j].Timestamp)
	})
}

// SortStoriesByPoints orders stories by points descending, in place.
func SortStoriesByPoints(stories []Record) {
	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].Points > stories[j].Points
	})
}

// SortArticlesNewestFirst orders feed articles by publication time
// descending, in place.
func SortArticlesNewestFirst(articles []Record) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Timestamp.After(articles[j].Timestamp)
	})
}

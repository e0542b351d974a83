package digest

import "devops-digest/highlight"

// Stats holds the digest-level counters derived from the structured
// record sets of all sources. Computed once per run; the stats travel
// as a value between stages, never round-tripped through rendered
// text.
type Stats struct {
	ArticleCount         int
	ArticleCategoryCount int
	ReleaseCount         int
	ReleaseCategoryCount int
	StoryCount           int
	TotalPoints          int
	TotalComments        int
	BreakingCount        int
	SecurityCount        int
}

// TotalItems is the number of records tracked across all sources.
func (s Stats) TotalItems() int {
	return s.ArticleCount + s.ReleaseCount + s.StoryCount
}

// HasAlerts reports whether any release carries breaking changes or
// security updates.
func (s Stats) HasAlerts() bool {
	return s.BreakingCount > 0 || s.SecurityCount > 0
}

// AggregateStats derives digest statistics from the three sources'
// record sets. Category counts are distinct labels within a source.
// BreakingCount and SecurityCount count release records whose
// respective highlight bucket is non-empty. Total over any input,
// including empty sets.
func AggregateStats(articles, releases, stories []Record) Stats {
	stats := Stats{
		ArticleCount:         len(articles),
		ArticleCategoryCount: distinctLabels(articles),
		ReleaseCount:         len(releases),
		ReleaseCategoryCount: distinctLabels(releases),
		StoryCount:           len(stories),
	}

	for _, r := range releases {
		if len(r.Highlights[highlight.Breaking]) > 0 {
			stats.BreakingCount++
		}
		if len(r.Highlights[highlight.Security]) > 0 {
			stats.SecurityCount++
		}
	}

	for _, r := range stories {
		stats.TotalPoints += r.Points
		stats.TotalComments += r.Comments
	}

	return stats
}

func distinctLabels(records []Record) int {
	seen := make(map[string]bool)
	for _, r := range records {
		for _, label := range r.Labels {
			seen[label] = true
		}
	}
	return len(seen)
}

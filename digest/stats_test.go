package digest

import (
	"testing"

	"devops-digest/highlight"
)

func releaseWithBuckets(breaking, security bool) Record {
	buckets := highlight.Buckets{}
	if breaking {
		buckets[highlight.Breaking] = []string{"BREAKING: something"}
	}
	if security {
		buckets[highlight.Security] = []string{"security patch"}
	}
	return Record{Labels: []string{"general"}, Highlights: buckets}
}

func TestAggregateStatsCounts(t *testing.T) {
	articles := []Record{
		{Labels: []string{"cloud"}},
		{Labels: []string{"cloud", "security"}},
	}
	releases := []Record{
		releaseWithBuckets(true, false),
		releaseWithBuckets(false, true),
		releaseWithBuckets(false, false),
	}
	stories := []Record{
		{Labels: []string{"general"}, Points: 100, Comments: 20},
		{Labels: []string{"kubernetes"}, Points: 50, Comments: 5},
	}

	stats := AggregateStats(articles, releases, stories)

	if stats.ArticleCount != 2 || stats.ArticleCategoryCount != 2 {
		t.Errorf("articles: count=%d categories=%d", stats.ArticleCount, stats.ArticleCategoryCount)
	}
	if stats.ReleaseCount != 3 || stats.ReleaseCategoryCount != 1 {
		t.Errorf("releases: count=%d categories=%d", stats.ReleaseCount, stats.ReleaseCategoryCount)
	}
	if stats.StoryCount != 2 || stats.TotalPoints != 150 || stats.TotalComments != 25 {
		t.Errorf("stories: count=%d points=%d comments=%d", stats.StoryCount, stats.TotalPoints, stats.TotalComments)
	}
	if stats.BreakingCount != 1 || stats.SecurityCount != 1 {
		t.Errorf("alerts: breaking=%d security=%d", stats.BreakingCount, stats.SecurityCount)
	}
	if stats.TotalItems() != 7 {
		t.Errorf("total items = %d, want 7", stats.TotalItems())
	}
	if !stats.HasAlerts() {
		t.Error("HasAlerts = false, want true")
	}
}

func TestAggregateStatsBreakingCountMatchesBuckets(t *testing.T) {
	// BreakingCount must equal the number of releases with a non-empty
	// breaking bucket, for the empty set, a mixed set, and the full set.
	cases := [][]Record{
		nil,
		{releaseWithBuckets(false, false)},
		{releaseWithBuckets(true, false), releaseWithBuckets(false, false), releaseWithBuckets(true, true)},
		{releaseWithBuckets(true, false), releaseWithBuckets(true, false)},
	}
	for i, releases := range cases {
		want := 0
		for _, r := range releases {
			if len(r.Highlights[highlight.Breaking]) > 0 {
				want++
			}
		}
		stats := AggregateStats(nil, releases, nil)
		if stats.BreakingCount != want {
			t.Errorf("case %d: breaking = %d, want %d", i, stats.BreakingCount, want)
		}
	}
}

func TestAggregateStatsEmptyInputs(t *testing.T) {
	stats := AggregateStats(nil, nil, nil)
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero value", stats)
	}
	if stats.TotalItems() != 0 || stats.HasAlerts() {
		t.Error("empty inputs must yield zero totals and no alerts")
	}
}

func TestAggregateStatsNilHighlights(t *testing.T) {
	// Records built without highlight maps must not panic.
	releases := []Record{{Labels: []string{"x"}}}
	stats := AggregateStats(nil, releases, nil)
	if stats.BreakingCount != 0 || stats.SecurityCount != 0 {
		t.Errorf("alerts = %d/%d, want zero", stats.BreakingCount, stats.SecurityCount)
	}
}

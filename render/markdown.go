// Package render serializes a composed digest to markdown. It is a
// pure presentation layer: every count and classification comes from
// the digest structure, nothing is re-derived here.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"devops-digest/digest"
	"devops-digest/highlight"
)

// bucketDisplayLimit caps how many extracted lines are shown per
// highlight bucket in a release entry.
const bucketDisplayLimit = 2

const timeLayout = "2006-01-02 15:04"

// Markdown renders the full combined report.
func Markdown(d digest.Digest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# 🚀 DevOps Monitoring Digest - %s\n\n", titleCase(d.ReportType))
	fmt.Fprintf(&sb, "*Generated on %s UTC*\n\n", d.GeneratedAt.UTC().Format(timeLayout))
	sb.WriteString("**Your comprehensive source for DevOps ecosystem updates and insights**\n\n")
	sb.WriteString("---\n\n")

	writeSummary(&sb, d)
	writeArticles(&sb, d)
	writeReleases(&sb, d)
	writeStories(&sb, d)
	writeFooter(&sb)

	return sb.String()
}

// writeSummary renders the executive summary from the digest stats.
func writeSummary(sb *strings.Builder, d digest.Digest) {
	s := d.Stats
	sb.WriteString("# 📋 Executive Summary\n\n")
	fmt.Fprintf(sb, "*%s DevOps Ecosystem Overview*\n\n", titleCase(d.ReportType))

	sb.WriteString("## Activity Overview\n\n")
	fmt.Fprintf(sb, "- 📰 **%d** new articles from RSS feeds across **%d** categories\n", s.ArticleCount, s.ArticleCategoryCount)
	fmt.Fprintf(sb, "- 📦 **%d** new releases from monitored projects across **%d** categories\n", s.ReleaseCount, s.ReleaseCategoryCount)
	fmt.Fprintf(sb, "- 💬 **%d** relevant Hacker News discussions with **%d** points and **%d** comments\n", s.StoryCount, s.TotalPoints, s.TotalComments)
	fmt.Fprintf(sb, "- 🎯 **%d** total items tracked\n\n", s.TotalItems())

	if s.HasAlerts() {
		sb.WriteString("## ⚠️ Important Alerts\n\n")
		if s.BreakingCount > 0 {
			fmt.Fprintf(sb, "- 🚨 **%d** release(s) contain breaking changes - review before upgrading\n", s.BreakingCount)
		}
		if s.SecurityCount > 0 {
			fmt.Fprintf(sb, "- 🔒 **%d** release(s) include security updates - consider upgrading\n", s.SecurityCount)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
}

func writeArticles(sb *strings.Builder, d digest.Digest) {
	sb.WriteString("# 📰 RSS Feed Digest\n\n")
	if len(d.Articles) == 0 {
		sb.WriteString("No new articles found.\n\n")
		return
	}

	fmt.Fprintf(sb, "📊 **Total Articles:** %d | **Categories:** %d\n\n",
		d.Stats.ArticleCount, d.Stats.ArticleCategoryCount)

	for _, group := range d.Articles {
		fmt.Fprintf(sb, "## %s\n\n", titleCase(group.Label))
		for _, r := range group.Records {
			fmt.Fprintf(sb, "### [%s](%s)\n", r.Title, r.URL)
			fmt.Fprintf(sb, "**Source:** %s | **Date:** %s\n\n", r.Source, recordDate(r))
			if r.BodyPreview != "" {
				fmt.Fprintf(sb, "%s\n\n", r.BodyPreview)
			}
			sb.WriteString("---\n\n")
		}
	}
}

func writeReleases(sb *strings.Builder, d digest.Digest) {
	sb.WriteString("# 📦 GitHub Releases\n\n")
	if len(d.Releases) == 0 {
		sb.WriteString("No new releases found.\n\n")
		return
	}

	fmt.Fprintf(sb, "📦 **Total Releases:** %d | **Categories:** %d\n\n",
		d.Stats.ReleaseCount, d.Stats.ReleaseCategoryCount)

	var indicators []string
	if n := prereleaseCount(d.Releases); n > 0 {
		indicators = append(indicators, fmt.Sprintf("⚠️ %d pre-release(s)", n))
	}
	if d.Stats.BreakingCount > 0 {
		indicators = append(indicators, fmt.Sprintf("🚨 %d with breaking changes", d.Stats.BreakingCount))
	}
	if d.Stats.SecurityCount > 0 {
		indicators = append(indicators, fmt.Sprintf("🔒 %d with security updates", d.Stats.SecurityCount))
	}
	if len(indicators) > 0 {
		sb.WriteString(strings.Join(indicators, " | ") + "\n\n")
	}

	sb.WriteString("---\n\n")

	for _, group := range d.Releases {
		fmt.Fprintf(sb, "## %s\n\n", titleCase(group.Label))
		fmt.Fprintf(sb, "*%d release(s)*\n\n", group.Count)
		for _, r := range group.Records {
			writeRelease(sb, r)
		}
	}
}

func writeRelease(sb *strings.Builder, r digest.Record) {
	prereleaseTag := ""
	if r.Prerelease {
		prereleaseTag = " ⚠️ (Pre-release)"
	}
	fmt.Fprintf(sb, "### %s %s%s\n\n", r.Source, r.Version, prereleaseTag)

	fmt.Fprintf(sb, "**Repository:** %s | **Date:** %s", r.Repo, recordDate(r))
	if r.AssetsCount > 0 {
		fmt.Fprintf(sb, " | **Assets:** %d", r.AssetsCount)
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "[View Release](%s)\n\n", r.URL)

	if !r.Highlights.Empty() {
		sb.WriteString("#### 📌 Key Highlights\n\n")
		writeBucket(sb, "🚨 **Breaking Changes:**", r.Highlights[highlight.Breaking])
		writeBucket(sb, "🔒 **Security Updates:**", r.Highlights[highlight.Security])
		writeBucket(sb, "✨ **New Features:**", r.Highlights[highlight.Feature])
		writeBucket(sb, "🐛 **Bug Fixes:**", r.Highlights[highlight.Fix])
	} else if r.BodyPreview != "" {
		sb.WriteString("#### Release Notes\n\n")
		fmt.Fprintf(sb, "%s\n\n", r.BodyPreview)
	}

	sb.WriteString("---\n\n")
}

func writeBucket(sb *strings.Builder, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	if len(lines) > bucketDisplayLimit {
		lines = lines[:bucketDisplayLimit]
	}
	sb.WriteString(heading + "\n")
	for _, line := range lines {
		fmt.Fprintf(sb, "- %s\n", line)
	}
	sb.WriteString("\n")
}

func writeStories(sb *strings.Builder, d digest.Digest) {
	sb.WriteString("# 💬 Hacker News Digest\n\n")
	if len(d.Stories) == 0 {
		sb.WriteString("No relevant stories found.\n\n")
		return
	}

	fmt.Fprintf(sb, "💬 **Total Stories:** %d | **Total Points:** %d | **Total Comments:** %d\n\n",
		d.Stats.StoryCount, d.Stats.TotalPoints, d.Stats.TotalComments)

	if line := topicLine(d.TopStoryTopics); line != "" {
		fmt.Fprintf(sb, "**Top topics:** %s\n\n", line)
	}

	for _, group := range d.Stories {
		fmt.Fprintf(sb, "## %s\n\n", titleCase(group.Label))
		for _, r := range group.Records {
			fmt.Fprintf(sb, "### [%s](%s)\n", r.Title, r.URL)
			fmt.Fprintf(sb, "**Points:** %d | **Comments:** %d | **Author:** %s | **Date:** %s\n\n",
				r.Points, r.Comments, r.Author, recordDate(r))
			fmt.Fprintf(sb, "[Discussion on HN](%s)\n\n", r.CanonicalID)
			sb.WriteString("---\n\n")
		}
	}
}

// prereleaseCount counts distinct pre-release records across groups.
// Records appear once per label, so they are deduplicated by canonical
// ID before counting.
func prereleaseCount(groups []digest.Group) int {
	seen := make(map[string]bool)
	count := 0
	for _, g := range groups {
		for _, r := range g.Records {
			if !r.Prerelease || seen[r.CanonicalID] {
				continue
			}
			seen[r.CanonicalID] = true
			count++
		}
	}
	return count
}

// topicLine formats the population-ordered story topics as
// "label (count), label (count)".
func topicLine(groups []digest.Group) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%s (%d)", g.Label, g.Count))
	}
	return strings.Join(parts, ", ")
}

func writeFooter(sb *strings.Builder) {
	sb.WriteString("---\n\n")
	sb.WriteString("## 💡 About This Digest\n\n")
	sb.WriteString("This automated report aggregates the latest DevOps news, tool releases, and community discussions to help you stay informed about the rapidly evolving DevOps ecosystem.\n\n")
	sb.WriteString("**Sources:**\n")
	sb.WriteString("- 📰 RSS feeds from the configured watchlist\n")
	sb.WriteString("- 📦 GitHub releases of monitored projects\n")
	sb.WriteString("- 💬 Curated Hacker News discussions with high engagement\n")
}

func recordDate(r digest.Record) string {
	if r.Timestamp.IsZero() {
		return "Unknown"
	}
	return r.Timestamp.UTC().Format(timeLayout)
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Package highlight scans the leading lines of a release body and
// buckets notable lines into breaking/security/feature/fix groups.
// Bucket precedence is strict: a line claimed by a higher-precedence
// bucket never appears in a lower one.
package highlight

import "strings"

// Kind identifies one highlight bucket.
type Kind string

const (
	Breaking Kind = "breaking"
	Security Kind = "security"
	Feature  Kind = "feature"
	Fix      Kind = "fix"
)

// Kinds lists the buckets in precedence order, highest first.
var Kinds = []Kind{Breaking, Security, Feature, Fix}

// Buckets holds the extracted lines per bucket, in original line order.
type Buckets map[Kind][]string

// Empty reports whether no bucket has any entry.
func (b Buckets) Empty() bool {
	for _, lines := range b {
		if len(lines) > 0 {
			return false
		}
	}
	return true
}

// Keyword sets, declared as data. Matching is case-insensitive
// substring membership.
var (
	breakingKeywords = []string{"breaking", "breaking change", "breaking changes", "⚠️", "🚨"}
	securityKeywords = []string{"security", "vulnerability", "cve", "patch"}
	featureKeywords  = []string{"feature", "add", "new", "✨", "🎉"}
	fixKeywords      = []string{"fix", "bug", "resolve", "🐛"}
)

// Options controls the scan windows and caps. The windows are
// heuristic cutoffs inherited from the source behavior; they are
// parameters rather than constants because their exact values have no
// verifiable rationale beyond matching it.
type Options struct {
	// WindowWide bounds the breaking and security scans (lines).
	WindowWide int
	// WindowPrimary bounds the feature and fix scans (lines).
	WindowPrimary int
	// CapPerBucket truncates each bucket after extraction.
	CapPerBucket int
	// MinLineLen excludes short lines from feature and fix buckets.
	MinLineLen int
}

// DefaultOptions returns the windows and caps matching the observed
// source behavior.
func DefaultOptions() Options {
	return Options{
		WindowWide:    30,
		WindowPrimary: 20,
		CapPerBucket:  3,
		MinLineLen:    10,
	}
}

// lineCutset covers the list markers stripped from stored lines.
const lineCutset = "*- #"

// Extract buckets the leading lines of body. The passes run in
// precedence order (breaking, security over the wide window; feature,
// fix over the primary window with a minimum raw line length), each
// pass skipping lines already claimed. Stored lines have leading and
// trailing '*', '-', '#' and spaces removed, and every bucket is
// truncated to the per-bucket cap preserving line order. An empty body
// yields empty buckets.
func Extract(body string, opts Options) Buckets {
	buckets := Buckets{
		Breaking: nil,
		Security: nil,
		Feature:  nil,
		Fix:      nil,
	}
	if body == "" {
		return buckets
	}

	lines := strings.Split(body, "\n")
	claimed := make([]bool, len(lines))

	scan := func(kind Kind, keywords []string, window int, minLen int) {
		if window > len(lines) {
			window = len(lines)
		}
		for i := 0; i < window; i++ {
			if claimed[i] {
				continue
			}
			line := lines[i]
			if minLen > 0 && len(line) <= minLen {
				continue
			}
			lower := strings.ToLower(line)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					buckets[kind] = append(buckets[kind], strings.Trim(line, lineCutset))
					claimed[i] = true
					break
				}
			}
		}
	}

	scan(Breaking, breakingKeywords, opts.WindowWide, 0)
	scan(Security, securityKeywords, opts.WindowWide, 0)
	scan(Feature, featureKeywords, opts.WindowPrimary, opts.MinLineLen)
	scan(Fix, fixKeywords, opts.WindowPrimary, opts.MinLineLen)

	for kind, entries := range buckets {
		if len(entries) > opts.CapPerBucket {
			buckets[kind] = entries[:opts.CapPerBucket]
		}
	}
	return buckets
}

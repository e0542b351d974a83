package digest

// IdentityFunc derives the dedup key for a record. An empty key keeps
// the record unconditionally. The identity rules differ per source, so
// each source carries its own strategy instead of one global rule.
type IdentityFunc func(Record) string

// StoryIdentity dedups discussion stories by their normalized
// discussion-thread URL, which the builder stores as the canonical ID.
func StoryIdentity(r Record) string {
	return NormalizeURL(r.CanonicalID)
}

// ReleaseIdentity dedups releases within one repo's release list by
// repo plus tag. Equal tags across different repos never collide.
func ReleaseIdentity(r Record) string {
	return ReleaseKey(r.Repo, r.Version)
}

// ArticleIdentity performs no identity dedup: feed entries are only
// collapsed by category grouping, never dropped.
func ArticleIdentity(Record) string {
	return ""
}

// Dedupe removes records whose identity key was already seen,
// preserving first-seen order. Idempotent: a second pass over its own
// output is a no-op.
func Dedupe(records []Record, identity IdentityFunc) []Record {
	if len(records) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := identity(r)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, r)
	}
	return out
}

package digest

import (
	"sort"
	"strings"
)

// Group holds the records carrying one label. Count always equals
// len(Records).
type Group struct {
	Label   string
	Records []Record
	Count   int
}

// GroupByLabel partitions records by label with fan-out: a record with
// several labels appears in every matching group. Groups are ordered
// by label ascending case-insensitive, ties broken by rank (the topic
// table position) and then byte order; records keep their input order
// within a group. rank may be nil.
func GroupByLabel(records []Record, rank func(string) int) []Group {
	if rank == nil {
		rank = func(string) int { return 0 }
	}

	byLabel := make(map[string][]Record)
	var order []string
	for _, r := range records {
		for _, label := range r.Labels {
			if _, ok := byLabel[label]; !ok {
				order = append(order, label)
			}
			byLabel[label] = append(byLabel[label], r)
		}
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la != lb {
			return la < lb
		}
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}
		return a < b
	})

	groups := make([]Group, 0, len(order))
	for _, label := range order {
		groups = append(groups, Group{
			Label:   label,
			Records: byLabel[label],
			Count:   len(byLabel[label]),
		})
	}
	return groups
}

// GroupsByPopulation returns a copy of groups ordered most populous
// first, ties keeping the incoming (label-sorted) order. Used for the
// discussion topic-frequency summary.
func GroupsByPopulation(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

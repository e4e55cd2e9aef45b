package catalog

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

type normalized struct {
	entry  Entry
	titles []string
}

// Match finds title in entries. Stages are tried in order:
// an exact match of either normalized title, a normalized title containing
// the query, then the closest fuzzy match by edit distance.
func Match(entries []Entry, title string) (Entry, bool) {
	target := Normalize(title)
	if target == "" || len(entries) == 0 {
		return Entry{}, false
	}

	all := lo.Map(entries, func(e Entry, _ int) normalized {
		titles := []string{Normalize(e.Title)}
		if e.TitleO != "" {
			titles = append(titles, Normalize(e.TitleO))
		}
		return normalized{entry: e, titles: titles}
	})

	if n, ok := lo.Find(all, func(n normalized) bool {
		return lo.Contains(n.titles, target)
	}); ok {
		return n.entry, true
	}

	if n, ok := lo.Find(all, func(n normalized) bool {
		return lo.SomeBy(n.titles, func(t string) bool { return strings.Contains(t, target) })
	}); ok {
		return n.entry, true
	}

	fuzzyMatches := lo.Filter(all, func(n normalized, _ int) bool {
		return lo.SomeBy(n.titles, func(t string) bool { return fuzzy.Match(target, t) })
	})
	if len(fuzzyMatches) == 0 {
		return Entry{}, false
	}

	closest := lo.MinBy(fuzzyMatches, func(a, b normalized) bool {
		return distance(target, a) < distance(target, b)
	})
	return closest.entry, true
}

func distance(target string, n normalized) int {
	return lo.Min(lo.Map(n.titles, func(t string, _ int) int {
		return levenshtein.Distance(target, t)
	}))
}

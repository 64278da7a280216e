// Package fuzzy scores free-text labels against a typed query to rank
// autocomplete suggestions.
package fuzzy

import (
	"sort"
	"strings"
)

const (
	// DefaultLimit is the number of suggestions Rank returns when no limit is given.
	DefaultLimit = 5
	// Threshold is the score a candidate must exceed to be suggested.
	Threshold = 0.2

	wordStartBonus   = 0.2
	consecutiveBonus = 0.05
)

// Score rates how well candidate matches query, from 0 (no match) to 1
// (case-insensitive equality).
//
// Each query character is located in what is left of the candidate after the
// previous match. A match at the start of that remainder or after a space
// earns a word-start bonus, and a match following a word-start match earns a
// smaller consecutive bonus.
func Score(query, candidate string) float64 {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	if q == c {
		return 1
	}
	if q == "" || !strings.Contains(c, q) {
		return 0
	}

	window := []rune(c)
	score := 0.0
	prevStart := false
	for i, r := range []rune(q) {
		found := indexRune(window, r)
		if found < 0 {
			return 0
		}
		if i > 0 && prevStart {
			score += consecutiveBonus
		}
		start := found == 0 || window[found-1] == ' '
		if start {
			score += wordStartBonus
		}
		prevStart = start
		window = window[found+1:]
	}

	if score > 1 {
		return 1
	}
	return score
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}

// Rank scores every candidate against query and returns at most limit of
// them whose score exceeds Threshold, best first. Ties keep input order.
// An empty query yields nil.
func Rank(query string, candidates []string, limit int) []string {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	type scored struct {
		label string
		score float64
	}
	var hits []scored
	for _, c := range candidates {
		if s := Score(query, c); s > Threshold {
			hits = append(hits, scored{label: c, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.label)
	}
	return out
}

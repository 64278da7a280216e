package app

import (
	"sort"
	"time"

	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/fuzzy"
)

// DefaultRecentLimit is the size of the home screen list.
const DefaultRecentLimit = 10

// Query filters History. Zero fields do not filter.
type Query struct {
	Category entry.Category
	Search   string
	Since    time.Time
	Until    time.Time
	Limit    int
}

func (s *Service) snapshot() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entries returns the whole collection in stored order.
func (s *Service) Entries() []entry.Entry {
	return s.snapshot()
}

// Get returns the entry with id.
func (s *Service) Get(id string) (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.entries, id); i >= 0 {
		return s.entries[i], true
	}
	return entry.Entry{}, false
}

// MostRecent returns the last limit inserted entries, newest first.
func (s *Service) MostRecent(limit int) []entry.Entry {
	all := s.snapshot()
	out := make([]entry.Entry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, all[i])
	}
	return out
}

// Recent returns the limit entries with the latest timestamps, defaulting
// to DefaultRecentLimit.
func (s *Service) Recent(limit int) []entry.Entry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.History(Query{Limit: limit})
}

// ByCategory returns the entries of category c in stored order.
func (s *Service) ByCategory(c entry.Category) []entry.Entry {
	var out []entry.Entry
	for _, e := range s.snapshot() {
		if e.Category() == c {
			out = append(out, e)
		}
	}
	return out
}

// Search returns the entries whose label or notes contain query, ignoring
// case, in stored order.
func (s *Service) Search(query string) []entry.Entry {
	var out []entry.Entry
	for _, e := range s.snapshot() {
		if e.Matches(query) {
			out = append(out, e)
		}
	}
	return out
}

// History returns the entries matching q sorted by timestamp, newest first.
func (s *Service) History(q Query) []entry.Entry {
	var out []entry.Entry
	for _, e := range s.snapshot() {
		if q.Category != "" && e.Category() != q.Category {
			continue
		}
		if q.Search != "" && !e.Matches(q.Search) {
			continue
		}
		if !q.Since.IsZero() && e.Timestamp.Before(q.Since) {
			continue
		}
		if !q.Until.IsZero() && e.Timestamp.After(q.Until) {
			continue
		}
		out = append(out, e)
	}
	SortNewestFirst(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// SortNewestFirst orders entries by timestamp descending; ties keep their order.
func SortNewestFirst(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp.Time)
	})
}

// Suggestions returns distinct labels previously logged under category, most
// recently logged first. With a query they are ranked by fuzzy score and
// limited (fuzzy.DefaultLimit when limit <= 0); without one every label is
// returned, up to limit when limit > 0.
func (s *Service) Suggestions(category entry.Category, query string, limit int) []string {
	all := s.snapshot()
	seen := make(map[string]struct{})
	var labels []string
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if e.Category() != category {
			continue
		}
		if _, ok := seen[e.Label]; ok {
			continue
		}
		seen[e.Label] = struct{}{}
		labels = append(labels, e.Label)
	}

	if query != "" {
		return fuzzy.Rank(query, labels, limit)
	}
	if limit > 0 && len(labels) > limit {
		labels = labels[:limit]
	}
	return labels
}

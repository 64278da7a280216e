package app

import (
	"sort"
	"time"

	"tableflip.dev/symptoms/pkg/entry"
)

// ReportLabel counts how often one label was logged in the window.
type ReportLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReportSection summarizes one category.
type ReportSection struct {
	Category entry.Category `json:"category"`
	Count    int            `json:"count"`
	Labels   []ReportLabel  `json:"labels"`
	// AverageSeverity and MaxSeverity are set for the symptom section only.
	AverageSeverity float64        `json:"averageSeverity,omitempty"`
	MaxSeverity     entry.Severity `json:"maxSeverity,omitempty"`
}

// ReportResult is a per category summary of a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report summarizes the entries whose timestamp falls in [since, until).
// Sections follow category display order and skip empty categories; labels
// are sorted by count, then name.
func (s *Service) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	var in []entry.Entry
	for _, e := range s.History(Query{Since: since, Until: until}) {
		if e.Timestamp.Before(until) {
			in = append(in, e)
		}
	}

	type bucket struct {
		counts      map[string]int
		count       int
		severitySum int
		maxSeverity entry.Severity
	}
	buckets := make(map[entry.Category]*bucket)
	for _, e := range in {
		b, ok := buckets[e.Category()]
		if !ok {
			b = &bucket{counts: make(map[string]int)}
			buckets[e.Category()] = b
		}
		b.count++
		b.counts[e.Label]++
		if sev, ok := e.Severity(); ok {
			b.severitySum += int(sev)
			if sev > b.maxSeverity {
				b.maxSeverity = sev
			}
		}
	}

	result := ReportResult{Since: since, Until: until, Total: len(in)}
	for _, c := range entry.AllCategories() {
		b, ok := buckets[c]
		if !ok {
			continue
		}
		section := ReportSection{Category: c, Count: b.count}
		for label, n := range b.counts {
			section.Labels = append(section.Labels, ReportLabel{Label: label, Count: n})
		}
		sort.Slice(section.Labels, func(i, j int) bool {
			if section.Labels[i].Count != section.Labels[j].Count {
				return section.Labels[i].Count > section.Labels[j].Count
			}
			return section.Labels[i].Label < section.Labels[j].Label
		})
		if c.IsSymptom() {
			section.AverageSeverity = float64(b.severitySum) / float64(b.count)
			section.MaxSeverity = b.maxSeverity
		}
		result.Sections = append(result.Sections, section)
	}
	return result
}

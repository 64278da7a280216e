package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
)

func intake(t *testing.T, id string, c entry.Category, label string, at time.Time) entry.Entry {
	t.Helper()
	k, err := entry.NewIntake(c)
	require.NoError(t, err)
	e, err := entry.New(id, k, label, at, at, "")
	require.NoError(t, err)
	return e
}

func symptom(t *testing.T, id, label string, s entry.Severity, at time.Time, notes string) entry.Entry {
	t.Helper()
	k, err := entry.NewSymptom(s)
	require.NoError(t, err)
	e, err := entry.New(id, k, label, at, at, notes)
	require.NoError(t, err)
	return e
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Entries(nil)
	assert.Contains(t, buf.String(), "none")
}

func TestEntriesPlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2025, 3, 3, 20, 0, 0, 0, time.Local)
	pp := New(&buf, true)
	pp.Entries([]entry.Entry{
		symptom(t, "s-1", "headache", 7, at, "after lunch"),
		intake(t, "e-1", entry.CategoryEat, "rice", at),
	})

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "no escape codes for a buffer")
	for _, want := range []string{"s-1", "e-1", "Symptom", "Eat", "headache", "rice", "7/10", "after lunch", "Mar 3, 8:00 PM"} {
		assert.Contains(t, out, want)
	}
}

func TestEntriesWrapsNotes(t *testing.T) {
	var buf bytes.Buffer
	notes := strings.Repeat("word ", 30)
	New(&buf, false).Entries([]entry.Entry{symptom(t, "s-1", "nausea", 3, time.Now(), notes)})
	for _, line := range strings.Split(buf.String(), "\n") {
		assert.NotContains(t, line, strings.Repeat("word ", 11))
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := New(&buf, false)
	pp.TitleWithCount("Recent", 1)
	pp.TitleWithCount("History", 3)
	assert.Equal(t, "Recent - 1 entry\nHistory - 3 entries\n", buf.String())
}

func TestSuggestions(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Suggestions("co", []string{"coffee", "cola"})
	assert.Equal(t, "  coffee\n  cola\n", buf.String())

	buf.Reset()
	New(&buf, false).Suggestions("zz", nil)
	assert.Contains(t, buf.String(), "no suggestions")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	New(&buf, false).Report(app.ReportResult{
		Since: since,
		Until: since.Add(48 * time.Hour),
		Total: 3,
		Sections: []app.ReportSection{
			{Category: entry.CategoryEat, Count: 2, Labels: []app.ReportLabel{{Label: "rice", Count: 2}}},
			{Category: entry.CategorySymptom, Count: 1, Labels: []app.ReportLabel{{Label: "headache", Count: 1}}, AverageSeverity: 6, MaxSeverity: 6},
		},
	})
	out := buf.String()
	assert.Contains(t, out, "3 entries")
	assert.Contains(t, out, "2x rice")
	assert.Contains(t, out, "avg 6.0, max 6/10")
}

func TestDaysInAndStartDay(t *testing.T) {
	assert.Equal(t, 29, DaysIn(time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, 31, DaysIn(time.Date(2026, 3, 31, 23, 0, 0, 0, time.Local)))
	assert.Equal(t, time.Sunday, StartDay(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, time.April, NextMonth(time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)).Month())
}

func TestWorstByDay(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.Local) }
	worst := worstByDay(day(1, 0), []entry.Entry{
		intake(t, "a", entry.CategoryEat, "rice", day(2, 9)),
		symptom(t, "b", "headache", 4, day(3, 9), ""),
		symptom(t, "c", "headache", 8, day(3, 18), ""),
		symptom(t, "d", "elsewhere", 9, time.Date(2026, 4, 3, 9, 0, 0, 0, time.Local), ""),
	})
	require.Len(t, worst, 31)
	assert.Equal(t, -1, worst[0])
	assert.Equal(t, 0, worst[1])
	assert.Equal(t, 8, worst[2])
}

func TestSeverityColorEnds(t *testing.T) {
	assert.InDelta(t, 0, SeverityColor(entry.MinSeverity).DistanceLab(mildColor), 0.01)
	assert.InDelta(t, 0, SeverityColor(entry.MaxSeverity).DistanceLab(severeColor), 0.01)
	assert.Greater(t, SeverityColor(5).DistanceLab(mildColor), 0.1)
}

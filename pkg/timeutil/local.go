package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// InputLayout is the local, zone-less editing format (minute precision).
	InputLayout = "2006-01-02T15:04"

	inputLayoutSpaced = "2006-01-02 15:04"
	clockLayout       = "3:04 PM"
	dateClockLayout   = "Jan 2, 3:04 PM"
)

// LocalDisplay renders an instant for lists: "8:00 PM" when it falls on the
// current local calendar day, "Mar 3, 8:00 PM" otherwise.
func LocalDisplay(instant time.Time) string {
	return localDisplay(instant, time.Now(), time.Local)
}

func localDisplay(instant, now time.Time, loc *time.Location) string {
	t := instant.In(loc)
	if sameDay(t, now.In(loc)) {
		return t.Format(clockLayout)
	}
	return t.Format(dateClockLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LocalInput renders an instant as a zero padded local "YYYY-MM-DDTHH:mm"
// value. Seconds and below are dropped, so a LocalInput/ParseLocalInput round
// trip is lossy below one minute.
func LocalInput(instant time.Time) string {
	return localInput(instant, time.Local)
}

func localInput(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(InputLayout)
}

// ParseLocalInput interprets a local "YYYY-MM-DDTHH:mm" value in the current
// zone and returns the UTC instant.
func ParseLocalInput(input string) (time.Time, error) {
	return parseLocalInput(input, time.Local)
}

func parseLocalInput(input string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	for _, layout := range []string{InputLayout, inputLayoutSpaced} {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local time %q, expected YYYY-MM-DDTHH:mm", input)
}

// RelativeAge renders how long ago an instant was: "now", "5m ago", "3h ago"
// or "2d ago". Units are floored. The result depends on the current time.
func RelativeAge(instant time.Time) string {
	return relativeAge(instant, time.Now())
}

func relativeAge(instant, now time.Time) string {
	seconds := int64(now.Sub(instant) / time.Second)
	if seconds < 60 {
		return "now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

// ParseInstant parses an ISO 8601 instant string.
func ParseInstant(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: %w", v, err)
	}
	return t.UTC(), nil
}

// Package timeutil converts between stored UTC instants and the local,
// human-facing renderings used by the CLI and TUI.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the lookback used by history when --since is empty.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{}
)

func init() {
	for d, names := range map[time.Duration][]string{
		time.Minute: {"m", "min", "mins", "minute", "minutes"},
		time.Hour:   {"h", "hr", "hrs", "hour", "hours"},
		day:         {"d", "day", "days"},
		week:        {"w", "wk", "wks", "week", "weeks"},
	} {
		for _, n := range names {
			units[n] = d
		}
	}
}

// ParseWindow parses a lookback such as "3d", "12h" or "1w2d" and returns
// the duration plus its canonical spelling. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var total time.Duration
	for strings.TrimSpace(remaining) != "" {
		m := segmentPattern.FindStringSubmatch(remaining)
		if m == nil {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with w/d/h/m tokens, largest first.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range []struct {
		token string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.token)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}

// WindowStart returns the instant the window reaches back to from now.
func WindowStart(now time.Time, input string) (time.Time, string, error) {
	d, label, err := ParseWindow(input)
	if err != nil {
		return time.Time{}, "", err
	}
	return now.Add(-d).UTC(), label, nil
}

package options

import "strings"

// SplitItems splits comma separated input into trimmed, non-empty items.
func SplitItems(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/timeutil"
)

// FilterOptions captures the history filters.
type FilterOptions struct {
	Category string
	Search   string
	Since    string
	Until    string
	Limit    int
}

// AddFilterArgs wires the history filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Only show one category: eat, drink, meds, other or symptom.")
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show entries whose label or notes contain this text.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		"Only show entries inside this window, for example 3d or 1w2d.")
	cmd.Flags().StringVar(&o.Until, "until", "",
		`Only show entries up to this local time, example: --until="2026-03-03T20:00".`)
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Show at most this many entries.")
}

// Query converts the flags into a history query relative to now.
func (o *FilterOptions) Query(now time.Time) (app.Query, error) {
	q := app.Query{Search: o.Search, Limit: o.Limit}
	if o.Category != "" {
		c, err := entry.ParseCategory(o.Category)
		if err != nil {
			return q, err
		}
		q.Category = c
	}
	if o.Since != "" {
		since, _, err := timeutil.WindowStart(now, o.Since)
		if err != nil {
			return q, err
		}
		q.Since = since
	}
	if o.Until != "" {
		until, err := timeutil.ParseLocalInput(o.Until)
		if err != nil {
			return q, err
		}
		q.Until = until
	}
	return q, nil
}

// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/timeutil"
)

// AtOptions
type AtOptions struct {
	AtString string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`When it happened, local time, example: --at="2026-03-03T20:00". Defaults to now.`)
}

// GetAt returns the parsed instant in UTC, or the zero time when --at was
// not given.
func (o *AtOptions) GetAt() (time.Time, error) {
	if o.AtString == "" {
		return time.Time{}, nil
	}
	return timeutil.ParseLocalInput(o.AtString)
}

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/report"
	"tableflip.dev/symptoms/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize entries per category over a time window",
		Long: `Report counts entries per category and label within the specified time window,
with the average and worst severity of symptoms.

Examples:
  symptoms report
  symptoms report --last 3d
  symptoms report --last 1w2d --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			until := time.Now()
			since, _, err := timeutil.WindowStart(until, last)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := report.Report{
				Since:   since,
				Until:   until,
				JSON:    oo.JSON,
				Service: svc,
				Printer: printers.New(cmd.OutOrStdout(), false),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

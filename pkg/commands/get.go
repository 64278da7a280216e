package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/get"
)

func addRecent(topLevel *cobra.Command) {
	var (
		limit int
		month bool
	)
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the latest entries",
		Example: `
symptoms recent
symptoms recent -n 25 --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.New(cmd.OutOrStdout(), io.ShowID)
			pp.Age = true
			s := get.Get{
				Title:   "Recent",
				Recent:  true,
				Limit:   limit,
				Month:   month,
				JSON:    oo.JSON,
				Service: svc,
				Printer: pp,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", app.DefaultRecentLimit, "Show at most this many entries.")
	cmd.Flags().BoolVarP(&month, "month", "m", false, "Also show a calendar of the month.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addHistory(topLevel *cobra.Command) {
	var month bool
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log", "ls"},
		Short:   "Browse and search every entry, newest first",
		Example: `
symptoms history
symptoms history --category symptom --since 1w --month
symptoms history --search coffee --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			q, err := fo.Query(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				Title:   "History",
				Query:   q,
				Month:   month,
				JSON:    oo.JSON,
				Service: svc,
				Printer: printers.New(cmd.OutOrStdout(), io.ShowID),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(true), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVarP(&month, "month", "m", false, "Also show a calendar of the newest month shown.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

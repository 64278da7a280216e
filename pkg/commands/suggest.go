package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/fuzzy"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/suggest"
)

func addSuggest(topLevel *cobra.Command) {
	var limit int
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "suggest <category> [query]",
		Short: "Suggest labels you used before",
		Example: `
symptoms suggest drink
symptoms suggest eat chi
`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return categoryCompletions(true), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			category, err := entry.ParseCategory(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := suggest.Suggest{
				Category: category,
				Query:    strings.Join(args[1:], " "),
				Limit:    limit,
				JSON:     oo.JSON,
				Service:  svc,
				Printer:  printers.New(cmd.OutOrStdout(), false),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", fuzzy.DefaultLimit, "Suggest at most this many labels.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Example: `
symptoms delete 3f1c...
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer closeService(cmd.Context(), svc)

			s := remove.Remove{
				ID:      args[0],
				JSON:    oo.JSON,
				Service: svc,
				Printer: printers.New(cmd.OutOrStdout(), false),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

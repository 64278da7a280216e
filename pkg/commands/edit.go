package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	var (
		label    string
		notes    string
		severity int
	)
	ao := &options.AtOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the label, notes, time or severity of an entry",
		Long: options.Wrap80(`Only the flags given are changed. The category of an entry can not be
changed, delete it and log it again instead. Use --show-id (-k) on recent or history to find ids.`),
		Example: `
symptoms edit 3f1c... --label "green tea"
symptoms edit 3f1c... --severity 4 --notes ""
symptoms edit 3f1c... --at 2026-03-03T07:45
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var patch entry.Patch
			if cmd.Flags().Changed("label") {
				patch.Label = entry.Ptr(label)
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = entry.Ptr(notes)
			}
			if cmd.Flags().Changed("severity") {
				patch.Severity = entry.Ptr(entry.Severity(severity))
			}
			if cmd.Flags().Changed("at") {
				at, err := ao.GetAt()
				if err != nil {
					return oo.HandleError(err)
				}
				patch.Timestamp = &at
			}

			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer closeService(cmd.Context(), svc)

			s := edit.Edit{
				ID:      args[0],
				Patch:   patch,
				JSON:    oo.JSON,
				Service: svc,
				Printer: printers.New(cmd.OutOrStdout(), true),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "New label.")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes, an empty value clears them.")
	cmd.Flags().IntVarP(&severity, "severity", "s", 0, "New severity 1-10, symptoms only.")
	options.AddAtArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/symptom"
)

func addSymptom(topLevel *cobra.Command) {
	ao := &options.AtOptions{}
	so := &options.SymptomOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "symptom <name>",
		Aliases: []string{"feel"},
		Short:   "Log a symptom and how bad it is",
		Example: `
symptoms symptom headache --severity 6
symptoms symptom stomach ache -s 3 --notes "after lunch" --at 2026-03-03T13:30
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			severity, err := so.GetSeverity()
			if err != nil {
				return oo.HandleError(err)
			}
			at, err := ao.GetAt()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer closeService(cmd.Context(), svc)

			s := symptom.Symptom{
				Name:     strings.Join(args, " "),
				Severity: severity,
				At:       at,
				Notes:    so.Notes,
				JSON:     oo.JSON,
				Service:  svc,
				Printer:  printers.New(cmd.OutOrStdout(), io.ShowID),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddSymptomArgs(cmd, so)
	options.AddAtArgs(cmd, ao)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every entry as a JSON backup",
		Example: `
symptoms export > backup.json
symptoms export --out backup.json
symptoms export --clipboard
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			s := transfer.Export{
				Target:  to.Target(),
				Service: svc,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddTransferArgs(cmd, to, "out", `File to write, "-" is stdout.`)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge entries from a JSON backup",
		Long: options.Wrap80(`Entries whose id already exists are skipped, so importing the same backup twice
is harmless. The backup is checked completely before anything is saved.`),
		Example: `
symptoms import < backup.json
symptoms import --in backup.json
symptoms import --clipboard
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeService(cmd.Context(), svc)

			s := transfer.Import{
				Source:  to.Target(),
				Out:     cmd.OutOrStdout(),
				Service: svc,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddTransferArgs(cmd, to, "in", `File to read, "-" is stdin.`)
	topLevel.AddCommand(cmd)
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log something you ate, drank, took or did",
		Example: `
symptoms add eat chicken soup, bread
symptoms add drink coffee --at 2026-03-03T08:00
symptoms add meds ibuprofen
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, c := range entry.SimpleCategories() {
		addAddCategory(cmd, c)
	}

	topLevel.AddCommand(cmd)
}

func addAddCategory(topLevel *cobra.Command, category entry.Category) {
	ao := &options.AtOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <item>[, <item>...]", category),
		Short: fmt.Sprintf("Log %s entries, separate items with commas", category.Label()),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			at, err := ao.GetAt()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := openService(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer closeService(cmd.Context(), svc)

			s := add.Add{
				Category: category,
				Labels:   options.SplitItems(strings.Join(args, " ")),
				At:       at,
				JSON:     oo.JSON,
				Service:  svc,
				Printer:  printers.New(cmd.OutOrStdout(), io.ShowID),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddAtArgs(cmd, ao)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	var limit int
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the recent entries on screen, updating as they change",
		Long: options.Wrap80(`Watch follows the diskv store directory and reprints the recent entries
whenever another symptoms process writes to it. Other backends can not be watched.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			dir, _ := config.WatchDir()
			pp := printers.New(cmd.OutOrStdout(), io.ShowID)
			pp.Age = true
			s := watch.Watch{
				Dir:     dir,
				Limit:   limit,
				Service: svc,
				Printer: pp,
			}
			return s.Do(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", app.DefaultRecentLimit, "Show at most this many entries.")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}

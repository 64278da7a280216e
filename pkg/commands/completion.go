package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/timeutil"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generates shell completion scripts",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		Long: `To load completion run

. <(symptoms completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(symptoms completion)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) > 0 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			default:
				return topLevel.GenBashCompletionV2(out, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}

func categoryCompletions(withSymptom bool) []string {
	cats := entry.SimpleCategories()
	if withSymptom {
		cats = entry.AllCategories()
	}
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

// idCompletions offers the ids of the most recent entries, described by
// their label.
func idCompletions(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := openService(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	recent := svc.Recent(20)
	out := make([]string, 0, len(recent))
	for _, e := range recent {
		out = append(out, fmt.Sprintf("%s\t%s %s, %s", e.ID, e.Category().Label(), e.Label, timeutil.RelativeAge(e.Timestamp.Time)))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

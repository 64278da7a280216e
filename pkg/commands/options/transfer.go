package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/transfer"
)

// TransferOptions selects where export writes and import reads.
type TransferOptions struct {
	Clipboard bool
	Path      string
}

func AddTransferArgs(cmd *cobra.Command, o *TransferOptions, pathFlag, pathUsage string) {
	cmd.Flags().BoolVar(&o.Clipboard, "clipboard", false,
		"Use the system clipboard.")
	cmd.Flags().StringVar(&o.Path, pathFlag, "-", pathUsage)
	cmd.MarkFlagsMutuallyExclusive("clipboard", pathFlag)
}

// Target returns the clipboard collaborator the flags describe.
func (o *TransferOptions) Target() transfer.Clipboard {
	if o.Clipboard {
		return transfer.SystemClipboard{}
	}
	return transfer.NewFileClipboard(o.Path)
}

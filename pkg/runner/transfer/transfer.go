// Package transfer runs the export and import commands.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/symptoms/pkg/app"
	xfer "tableflip.dev/symptoms/pkg/transfer"
)

// Export writes the export document to the clipboard collaborator.
type Export struct {
	Target  xfer.Clipboard
	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil || n.Target == nil {
		return errors.New("can not export, no service or target")
	}
	var buf bytes.Buffer
	if err := n.Service.Export(ctx, &buf); err != nil {
		return err
	}
	return n.Target.WriteText(buf.String())
}

// Import reads an export document from the clipboard collaborator and merges
// it, reporting how many entries were added on Out.
type Import struct {
	Source  xfer.Clipboard
	Out     io.Writer
	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil || n.Source == nil {
		return errors.New("can not import, no service or source")
	}
	text, err := n.Source.ReadText()
	if err != nil {
		return err
	}
	added, err := n.Service.ImportFrom(ctx, strings.NewReader(text))
	if err != nil {
		return err
	}
	if n.Out != nil {
		_, _ = fmt.Fprintf(n.Out, "imported %d entries\n", added)
	}
	return nil
}

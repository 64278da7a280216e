package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

// ErrNothingToChange is returned when no field was given to edit.
var ErrNothingToChange = errors.New("edit: nothing to change")

type Edit struct {
	ID    string
	Patch entry.Patch
	JSON  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Patch.IsEmpty() {
		return ErrNothingToChange
	}
	updated, ok, err := n.Service.UpdateEntry(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("edit: no entry %q", n.ID)
	}
	if n.JSON {
		return printers.JSON(n.Printer.Out, updated)
	}
	n.Printer.Entries([]entry.Entry{updated})
	return nil
}

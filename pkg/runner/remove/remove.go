package remove

import (
	"context"
	"errors"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/printers"
)

// Remove deletes one entry by id. Deleting an unknown id is not an error.
type Remove struct {
	ID   string
	JSON bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	existed := n.Service.DeleteEntry(ctx, n.ID)
	if n.JSON {
		return printers.JSON(n.Printer.Out, map[string]any{"id": n.ID, "deleted": existed})
	}
	n.Printer.Deleted(n.ID, existed)
	return nil
}

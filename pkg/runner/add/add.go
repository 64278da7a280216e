package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

// Add logs one intake entry per label, all sharing one timestamp.
type Add struct {
	Category entry.Category
	Labels   []string
	At       time.Time
	JSON     bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	created, err := n.Service.CreateSimpleEntries(ctx, n.Labels, n.Category, n.At)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Printer.Out, created)
	}
	n.Printer.Created(created)
	return nil
}

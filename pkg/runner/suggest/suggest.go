package suggest

import (
	"context"
	"errors"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

// Suggest prints labels used before in a category, ranked against Query.
type Suggest struct {
	Category entry.Category
	Query    string
	Limit    int
	JSON     bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Suggest) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not suggest, no service")
	}
	labels := n.Service.Suggestions(n.Category, n.Query, n.Limit)
	if n.JSON {
		if labels == nil {
			labels = []string{}
		}
		return printers.JSON(n.Printer.Out, labels)
	}
	n.Printer.Suggestions(n.Query, labels)
	return nil
}

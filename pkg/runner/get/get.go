package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

// Get lists entries, either the recent view or a filtered history.
type Get struct {
	Title  string
	Recent bool
	Limit  int
	Query  app.Query
	// Month adds a calendar of the month of the newest entry shown.
	Month bool
	JSON  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Get) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	var all []entry.Entry
	if n.Recent {
		all = n.Service.Recent(n.Limit)
	} else {
		all = n.Service.History(n.Query)
	}

	if n.JSON {
		if all == nil {
			all = []entry.Entry{}
		}
		return printers.JSON(n.Printer.Out, all)
	}

	title := n.Title
	if title == "" {
		title = "History"
	}
	n.Printer.TitleWithCount(title, len(all))
	n.Printer.Entries(all)

	if n.Month {
		month := time.Now()
		if len(all) > 0 {
			month = all[0].Timestamp.Time
		}
		n.Printer.Month(month, all)
	}
	return nil
}

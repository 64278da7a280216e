package watch

import (
	"context"
	"errors"

	"github.com/apex/log"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/printers"
	"tableflip.dev/symptoms/pkg/store"
)

// Watch reprints the recent entries every time the store directory changes
// underneath us, for example from another terminal.
type Watch struct {
	Dir   string
	Limit int

	Service *app.Service
	Printer *printers.PrettyPrint

	// Events replaces store.Watch.
	Events func(ctx context.Context, dir string) (<-chan store.Event, error)
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no service")
	}
	if n.Dir == "" {
		return errors.New("can not watch, the configured backend has no directory")
	}
	events := n.Events
	if events == nil {
		events = store.Watch
	}

	ch, err := events(ctx, n.Dir)
	if err != nil {
		return err
	}

	n.print()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			log.WithField("key", ev.Key).Debug("store changed")
			n.Service.Reload(ctx)
			n.print()
		}
	}
}

func (n *Watch) print() {
	recent := n.Service.Recent(n.Limit)
	n.Printer.TitleWithCount("Recent", len(recent))
	n.Printer.Entries(recent)
}

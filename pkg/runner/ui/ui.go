package ui

import (
	"context"
	"errors"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/tui"
)

// UI opens the interactive history browser.
type UI struct {
	Service *app.Service
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no service")
	}
	return tui.Run(ctx, d.Service)
}

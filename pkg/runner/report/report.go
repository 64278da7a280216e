package report

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/printers"
)

type Report struct {
	Since time.Time
	Until time.Time
	JSON  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Report) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	result := n.Service.Report(n.Since, n.Until)
	if n.JSON {
		return printers.JSON(n.Printer.Out, result)
	}
	n.Printer.Report(result)
	return nil
}

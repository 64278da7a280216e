package symptom

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/printers"
)

type Symptom struct {
	Name     string
	Severity entry.Severity
	At       time.Time
	Notes    string
	JSON     bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Symptom) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log symptom, no service")
	}
	e, err := n.Service.CreateSymptom(ctx, n.Name, n.Severity, n.At, n.Notes)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Printer.Out, e)
	}
	n.Printer.Created([]entry.Entry{e})
	return nil
}

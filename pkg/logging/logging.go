// Package logging configures the process wide apex/log handler.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Formats accepted by Setup.
const (
	FormatCLI     = "cli"
	FormatJSON    = "json"
	FormatText    = "text"
	FormatDiscard = "discard"
)

// Handler returns the apex handler for format writing to w.
func Handler(format string, w io.Writer) (log.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCLI, "":
		return cli.New(w), nil
	case FormatJSON:
		return json.New(w), nil
	case FormatText:
		return text.New(w), nil
	case FormatDiscard:
		return discard.New(), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}

// Setup installs the handler for format at the given level on the default
// logger.
func Setup(level, format string, w io.Writer) error {
	h, err := Handler(format, w)
	if err != nil {
		return err
	}
	lvl := log.WarnLevel
	if strings.TrimSpace(level) != "" {
		if lvl, err = log.ParseLevel(strings.ToLower(level)); err != nil {
			return fmt.Errorf("logging: %w", err)
		}
	}
	log.SetHandler(h)
	log.SetLevel(lvl)
	return nil
}

// New returns a standalone logger, handy for wiring components in tests.
func New(level log.Level, h log.Handler) *log.Logger {
	return &log.Logger{Handler: h, Level: level}
}

package printers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/symptoms/pkg/entry"
)

var (
	mildColor, _   = colorful.Hex("#16a34a")
	severeColor, _ = colorful.Hex("#dc2626")
)

// ColorEnabled reports whether w is a terminal that should get color.
// NO_COLOR always wins.
func ColorEnabled(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SeverityColor blends from green (1) to red (10) in Lab space.
func SeverityColor(s entry.Severity) colorful.Color {
	t := float64(s-entry.MinSeverity) / float64(entry.MaxSeverity-entry.MinSeverity)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return mildColor.BlendLab(severeColor, t).Clamped()
}

// palette renders styled text for one writer.
type palette struct {
	enabled bool
	out     *termenv.Output
}

func newPalette(w io.Writer) palette {
	enabled := ColorEnabled(w)
	profile := termenv.Ascii
	if enabled {
		profile = termenv.EnvColorProfile()
	}
	return palette{enabled: enabled, out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (p palette) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (p palette) hex(s, hex string) string {
	return p.out.String(s).Foreground(p.out.Color(hex)).String()
}

func (p palette) category(c entry.Category) string {
	return p.hex(c.Label(), c.Color())
}

func (p palette) severity(s entry.Severity) string {
	return p.out.String(severityText(s)).Bold().Foreground(p.out.Color(SeverityColor(s).Hex())).String()
}

func severityText(s entry.Severity) string {
	return fmt.Sprintf("%d/10", s)
}
